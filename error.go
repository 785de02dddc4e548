package main

import (
	"errors"
	"fmt"
)

// checkNil checks if any of the provided values are nil and returns
// an error if they are.
func checkNil(values ...any) error {
	for _, value := range values {
		if value == nil {
			return fmt.Errorf("nil value of type %T", value)
		}
	}

	return nil
}

type Category string

const (
	PARSE   Category = "parse"
	RESOLVE Category = "resolve"
	SOURCE  Category = "source"
	SINK    Category = "sink"
)

func (c Category) String() string {
	return string(c)
}

// Per-line failure kinds. Both are reported and skipped; neither
// aborts a run.
var (
	ErrIllegalRecord  = errors.New("illegal record")
	ErrIllegalAddress = errors.New("illegal address")
)

// ErrSinkFailed indicates the update execution sink failed. This is
// the only failure that surfaces in the process exit status.
var ErrSinkFailed = errors.New("update sink failed")

type Error struct {
	Msg      string   `json:"msg"`
	Inner    error    `json:"inner,omitempty"`
	Line     int      `json:"line,omitempty"`
	Record   string   `json:"record,omitempty"`
	Category Category `json:"category,omitempty"`
}

func (e Error) String() string {
	msg := e.Msg
	if e.Inner != nil {
		msg = fmt.Sprintf("%s: %s", e.Msg, e.Inner)
	}

	if e.Record != "" {
		msg = fmt.Sprintf("%s | %s", msg, e.Record)
	}

	if e.Line > 0 {
		msg = fmt.Sprintf("%d: %s", e.Line, msg)
	}

	return msg
}

func (e Error) Error() string {
	return e.String()
}

func (e Error) Unwrap() error {
	//nolint:errorlint // this is correctly implemented
	wrapped, ok := e.Inner.(wrappedErr)
	if !ok {
		return e.Inner
	}

	return wrapped.Unwrap()
}

type wrappedErr interface {
	Unwrap() error
}
