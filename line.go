package main

import (
	"regexp"
	"strings"
)

// FieldSet is the ordered field split of one normalized input line.
// The simple shape carries host, addr and an optional extra field;
// the inventory shape prefixes site and building columns which are
// carried through but unused by resolution.
type FieldSet struct {
	Site     string
	Building string
	Host     string
	Addr     string
	Extra    string
}

var spaceRun = regexp.MustCompile(`\s+`)

// Normalize reduces one raw input line to a FieldSet.
//
// A nil FieldSet with a nil error means the line held nothing to
// parse (blank, or a pure comment); a non-empty line that still
// yields no field break is an illegal record.
//
// Accepted spellings all reduce to the comma form:
//
//	host,addr[,extra]
//	site,building,host,addr[,extra]
//	host=addr | host|addr | host addr
func Normalize(raw string) (*FieldSet, error) {
	line := strings.TrimSpace(raw)
	if line == "" || line[0] == '#' || line[0] == '!' {
		return nil, nil
	}

	// Inline comments run from the first interior # to end of line.
	if i := strings.Index(line, "#"); i > 0 {
		line = strings.TrimSpace(line[:i])
	}

	line = spaceRun.ReplaceAllString(line, " ")
	line = strings.ReplaceAll(line, ", ", ",")
	line = strings.ReplaceAll(line, " ,", ",")

	if !strings.Contains(line, ",") {
		// Shorthand forms: the first = or | becomes the field
		// break, leftover spaces follow suit.
		if i := strings.IndexAny(line, "=|"); i >= 0 {
			line = line[:i] + "," + line[i+1:]

			// The swap can leave the new comma padded
			// ("host = addr" became "host , addr").
			line = strings.ReplaceAll(line, ", ", ",")
			line = strings.ReplaceAll(line, " ,", ",")
		}

		line = strings.ReplaceAll(line, " ", ",")
	}

	if line == "" {
		return nil, nil
	}

	breaks := strings.Count(line, ",")
	if breaks == 0 {
		return nil, ErrIllegalRecord
	}

	if breaks < 3 {
		cols := strings.SplitN(line, ",", 3)

		fields := &FieldSet{
			Host: cols[0],
			Addr: cols[1],
		}

		if len(cols) > 2 {
			fields.Extra = cols[2]
		}

		return fields, nil
	}

	cols := strings.SplitN(line, ",", 5)

	fields := &FieldSet{
		Site:     cols[0],
		Building: cols[1],
		Host:     cols[2],
		Addr:     cols[3],
	}

	if len(cols) > 4 {
		fields.Extra = cols[4]
	}

	return fields, nil
}
