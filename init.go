package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version string
	root    = &cobra.Command{
		Use:     "nsgen [flags] [record ...]",
		Short:   "nsgen converts host/address records into dynamic DNS update directives",
		Version: version,
		Run:     exec,
	}
)

func init() {
	root.PersistentFlags().BoolP(
		"verbose",
		"v",
		false,
		"verbose output",
	)
	viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.PersistentFlags().String(
		"config",
		"",
		"config file location",
	)

	viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	if viper.GetString("config") != "" {
		viper.SetConfigFile(viper.GetString("config"))
	}

	root.Flags().StringP(
		"domain",
		"d",
		"",
		"domain suffix applied to unqualified hostnames",
	)

	root.Flags().StringP(
		"server",
		"s",
		"",
		"DNS server receiving the updates",
	)

	root.Flags().Uint32P(
		"ttl",
		"t",
		DEFAULTTTL,
		"record TTL in seconds",
	)

	root.Flags().Bool(
		"drop-suffix",
		false,
		"force every hostname into the configured domain",
	)

	root.Flags().BoolP(
		"remove",
		"r",
		false,
		"withdraw records instead of registering them",
	)

	root.Flags().Bool("no-forward", false, "skip forward (A/AAAA) records")
	root.Flags().Bool("no-reverse", false, "skip reverse (PTR) records")
	root.Flags().Bool(
		"no-delete",
		false,
		"skip the delete preceding each forward add",
	)
	root.Flags().Bool("show", false, "show each transaction before sending")

	root.Flags().StringSliceP(
		"input",
		"i",
		[]string{},
		"record files or directories",
	)

	root.Flags().Bool("exec", false, "pipe the directives to nsupdate")
	root.Flags().String(
		"nsupdate",
		"nsupdate",
		"nsupdate binary used with --exec",
	)
	root.Flags().StringP(
		"key",
		"k",
		"",
		"TSIG key file passed to nsupdate",
	)

	root.Flags().Bool(
		"native",
		false,
		"apply updates directly over the DNS update protocol",
	)
	root.Flags().String(
		"tsig",
		"",
		"TSIG key (name:secret or name:algorithm:secret) for --native",
	)

	viper.BindPFlag("DNS.Domain", root.Flags().Lookup("domain"))
	viper.BindPFlag("DNS.Server", root.Flags().Lookup("server"))
	viper.BindPFlag("DNS.TTL", root.Flags().Lookup("ttl"))
	viper.BindPFlag("DNS.DropSuffix", root.Flags().Lookup("drop-suffix"))
	viper.BindPFlag("Update.Remove", root.Flags().Lookup("remove"))
	viper.BindPFlag("Update.NoForward", root.Flags().Lookup("no-forward"))
	viper.BindPFlag("Update.NoReverse", root.Flags().Lookup("no-reverse"))
	viper.BindPFlag("Update.NoDelete", root.Flags().Lookup("no-delete"))
	viper.BindPFlag("Update.Show", root.Flags().Lookup("show"))
	viper.BindPFlag("input", root.Flags().Lookup("input"))
	viper.BindPFlag("Sink.Exec", root.Flags().Lookup("exec"))
	viper.BindPFlag("Sink.NSUpdate", root.Flags().Lookup("nsupdate"))
	viper.BindPFlag("Sink.KeyFile", root.Flags().Lookup("key"))
	viper.BindPFlag("Sink.Native", root.Flags().Lookup("native"))
	viper.BindPFlag("Sink.TSIG", root.Flags().Lookup("tsig"))

	viper.AutomaticEnv()
	viper.SetConfigName("nsgen")

	viper.AddConfigPath("/etc/nsgen/")

	// Check home directory/.nsgen for config
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".nsgen"))
	}

	// Check working directory for config
	wd, err := os.Getwd()
	if err == nil {
		viper.AddConfigPath(wd)
	}

	err = viper.ReadInConfig()
	if err != nil {
		// The tool runs fine on flags and environment alone; only a
		// malformed config file is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}
}
