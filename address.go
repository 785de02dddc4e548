package main

import (
	"net"
	"regexp"

	"github.com/miekg/dns"
)

// dottedQuad is the only IPv4 spelling accepted from operator input.
var dottedQuad = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// Address is a validated IP literal. Instances exist only for input
// that passed full classification and are never mutated afterward.
type Address struct {
	Family  Family `json:"family"`
	Text    string `json:"text"`
	Reverse string `json:"reverse"`
}

func (a *Address) String() string {
	return a.Text
}

// Classify parses token as an IPv4 or IPv6 literal, returning its
// canonical text form and reverse-lookup name.
//
// IPv4 must be a strict four-octet dotted quad: permissive address
// parsers admit abbreviated quads ("10", "10.1") and v4-mapped IPv6
// text, which would let accidental data (a bare number, a phone
// number fragment) through as an address. IPv6 shorthand remains
// legal since the library parse is the definition of a complete
// IPv6 literal.
func Classify(token string) (*Address, bool) {
	ip := net.ParseIP(token)
	if ip == nil {
		return nil, false
	}

	family := V6
	if ip.To4() != nil {
		if !dottedQuad.MatchString(token) {
			return nil, false
		}

		family = V4
	}

	// Canonical form first so the reverse name is derived from the
	// same text the directives carry.
	text := ip.String()

	rev, err := dns.ReverseAddr(text)
	if err != nil {
		return nil, false
	}

	return &Address{
		Family:  family,
		Text:    text,
		Reverse: rev,
	}, true
}
