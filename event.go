package main

import (
	"fmt"
)

type Event struct {
	Msg    string          `json:"msg"`
	Line   int             `json:"line,omitempty"`
	Record *ResolvedRecord `json:"record,omitempty"`
	Source string          `json:"source,omitempty"`
}

func (e *Event) String() string {
	msg := e.Msg

	if e.Line > 0 {
		msg = fmt.Sprintf("%d: %s", e.Line, msg)
	}

	if e.Record != nil {
		msg = fmt.Sprintf("%s | %s", msg, e.Record)
	}

	if e.Source != "" {
		msg = fmt.Sprintf("%s | source: %s", msg, e.Source)
	}

	return msg
}

func (e *Event) Event() string {
	return e.String()
}
