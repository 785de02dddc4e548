package main

import (
	"strings"
)

// Resolve decides which of the two candidate fields is the hostname
// and which the address, then canonicalizes the hostname under the
// configured domain and stamps the run mode.
//
// When the address field fails classification the hostname field is
// tried instead; success there means the two fields arrived swapped
// ("1.2.3.4,host1") and resolution proceeds with the order fixed.
// Neither field classifying is an illegal address.
func Resolve(hostField, addrField string, cfg *Config) (*ResolvedRecord, error) {
	addr, ok := Classify(addrField)
	if !ok {
		addr, ok = Classify(hostField)
		if !ok {
			return nil, ErrIllegalAddress
		}

		hostField = addrField
	}

	mode := ADD
	if cfg.Remove {
		mode = REMOVE
	}

	return &ResolvedRecord{
		Hostname: qualify(hostField, cfg.Domain, cfg.DropSuffix),
		Addr:     addr,
		Mode:     mode,
	}, nil
}

// qualify applies the domain-suffix policy to a hostname.
//
// With drop set, any suffix present in the input is discarded and the
// configured domain is forced on, dot-terminated. Otherwise the domain
// is appended only to bare names, without a trailing dot, and names
// that already carry a dot pass through. Lowercasing applies in every
// branch.
func qualify(host, domain string, drop bool) string {
	switch {
	case drop:
		if i := strings.Index(host, "."); i >= 0 {
			host = host[:i]
		}

		host += "." + domain + "."
	case !strings.Contains(host, "."):
		host += "." + domain
	}

	return strings.ToLower(host)
}
