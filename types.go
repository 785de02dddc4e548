package main

import (
	"strings"

	"github.com/miekg/dns"
	"go.structs.dev/gen"
)

// Mode indicates whether this run registers records or withdraws them.
type Mode uint8

const (
	ADD Mode = iota
	REMOVE
)

var modeStrings = gen.FMap[Mode, string]{
	ADD:    "add",
	REMOVE: "remove",
}

var modeStringsR = modeStrings.Flip()

func StringToMode(str string) Mode {
	return modeStringsR[str]
}

func (m Mode) String() string {
	return modeStrings[m]
}

// Family is the address family of a classified IP literal.
type Family uint8

const (
	V4 Family = iota
	V6
)

var familyStrings = gen.FMap[Family, string]{
	V4: "v4",
	V6: "v6",
}

var familyStringsR = familyStrings.Flip()

func StringToFamily(str string) Family {
	return familyStringsR[str]
}

func (f Family) String() string {
	return familyStrings[f]
}

// RecordType returns the forward record type for the family.
func (f Family) RecordType() uint16 {
	if f == V6 {
		return dns.TypeAAAA
	}

	return dns.TypeA
}

// Mnemonic returns the lowercase record type mnemonic used in the
// directive stream (a, aaaa).
func (f Family) Mnemonic() string {
	return strings.ToLower(dns.TypeToString[f.RecordType()])
}
