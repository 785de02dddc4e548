package main

import (
	"encoding/json"
	"fmt"
)

// ResolvedRecord is the fully resolved form of one input line: a
// canonical hostname, a classified address, and the run mode. A
// record is only ever built whole; partially valid input is dropped
// at resolution.
type ResolvedRecord struct {
	Hostname string
	Addr     *Address
	Mode     Mode
}

// Type returns the lowercase forward record type mnemonic for the
// record (a or aaaa).
func (r *ResolvedRecord) Type() string {
	return r.Addr.Family.Mnemonic()
}

func (r *ResolvedRecord) String() string {
	return fmt.Sprintf(
		"%s %s %s %s",
		r.Mode,
		r.Hostname,
		r.Type(),
		r.Addr.Text,
	)
}

// MarshalJSON implements the json.Marshaler interface.
func (r *ResolvedRecord) MarshalJSON() ([]byte, error) {
	d := struct {
		Hostname string `json:"hostname"`
		Type     string `json:"type"`
		Addr     string `json:"addr"`
		Reverse  string `json:"reverse"`
		Mode     string `json:"mode"`
	}{
		Hostname: r.Hostname,
		Type:     r.Type(),
		Addr:     r.Addr.Text,
		Reverse:  r.Addr.Reverse,
		Mode:     r.Mode.String(),
	}

	return json.Marshal(d)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *ResolvedRecord) UnmarshalJSON(data []byte) error {
	d := struct {
		Hostname string `json:"hostname"`
		Addr     string `json:"addr"`
		Mode     string `json:"mode"`
	}{}

	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	addr, ok := Classify(d.Addr)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalAddress, d.Addr)
	}

	r.Hostname = d.Hostname
	r.Addr = addr
	r.Mode = StringToMode(d.Mode)

	return nil
}
