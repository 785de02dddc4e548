package main

import (
	"fmt"
	"net"

	"github.com/spf13/viper"
)

// Config carries the record semantics and sink settings for one run.
// It is built once from viper and never mutated afterward.
type Config struct {
	Domain      string `json:"domain"`
	Server      string `json:"server"`
	TTL         uint32 `json:"ttl"`
	Forward     bool   `json:"forward"`
	Reverse     bool   `json:"reverse"`
	DeleteFirst bool   `json:"delete_first"`
	Remove      bool   `json:"remove"`
	Show        bool   `json:"show"`
	DropSuffix  bool   `json:"drop_suffix"`

	// Sink selection. Exec pipes the directive stream to an external
	// nsupdate process; Native applies updates directly over the DNS
	// update protocol. Neither set means the stream goes to stdout.
	Exec     bool   `json:"exec"`
	Native   bool   `json:"native"`
	NSUpdate string `json:"nsupdate"`
	KeyFile  string `json:"key_file"`
	TSIG     string `json:"tsig"`
}

func NewConfig() *Config {
	return &Config{
		Domain:      viper.GetString("DNS.Domain"),
		Server:      viper.GetString("DNS.Server"),
		TTL:         uint32(viper.GetUint("DNS.TTL")),
		DropSuffix:  viper.GetBool("DNS.DropSuffix"),
		Forward:     !viper.GetBool("Update.NoForward"),
		Reverse:     !viper.GetBool("Update.NoReverse"),
		DeleteFirst: !viper.GetBool("Update.NoDelete"),
		Remove:      viper.GetBool("Update.Remove"),
		Show:        viper.GetBool("Update.Show"),
		Exec:        viper.GetBool("Sink.Exec"),
		Native:      viper.GetBool("Sink.Native"),
		NSUpdate:    viper.GetString("Sink.NSUpdate"),
		KeyFile:     viper.GetString("Sink.KeyFile"),
		TSIG:        viper.GetString("Sink.TSIG"),
	}
}

func (c *Config) Validate() error {
	if c.Domain == "" {
		return fmt.Errorf("domain is required")
	}

	if c.Server == "" {
		return fmt.Errorf("server is required")
	}

	if c.TTL == 0 {
		return fmt.Errorf("ttl must be non-zero")
	}

	if c.Exec && c.Native {
		return fmt.Errorf("exec and native sinks are mutually exclusive")
	}

	return nil
}

// ServerAddr returns the configured server as host:port, defaulting
// the port to 53.
func (c *Config) ServerAddr() string {
	_, _, err := net.SplitHostPort(c.Server)
	if err == nil {
		return c.Server
	}

	return net.JoinHostPort(c.Server, "53")
}
