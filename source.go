package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	stream "go.atomizer.io/stream"
	"go.devnw.com/event"
)

type SourceType string

const (
	FILE  SourceType = "file"
	ARG   SourceType = "arg"
	STDIN SourceType = "stdin"
)

// Source is one ordered unit of input: a file of records, a literal
// record from the command line, or the stdin fallback.
type Source struct {
	Value string
	Type  SourceType
}

func (s Source) String() string {
	if s.Type == STDIN {
		return "stdin"
	}

	return s.Value
}

// Lines streams the raw lines of each source, in source order, on the
// returned channel. Sources are consumed strictly sequentially so the
// per-run line numbering matches input position, and so the emitted
// directive order matches the input order the downstream transactions
// depend on.
func Lines(
	ctx context.Context,
	pub *event.Publisher,
	srcs ...Source,
) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		for _, src := range srcs {
			stream.Pipe(ctx, src.lines(ctx, pub), out)
		}
	}()

	return out
}

func (s Source) lines(
	ctx context.Context,
	pub *event.Publisher,
) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		var body io.ReadCloser
		switch s.Type {
		case ARG:
			body = io.NopCloser(strings.NewReader(s.Value))
		case STDIN:
			body = io.NopCloser(os.Stdin)
		default:
			f, err := os.Open(s.Value)
			if err != nil {
				pub.ErrorFunc(ctx, func() error {
					return &Error{
						Msg:      "failed to open input",
						Inner:    err,
						Record:   s.Value,
						Category: SOURCE,
					}
				})

				return
			}

			body = f
		}
		defer body.Close()

		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			case out <- scanner.Text():
			}
		}

		err := scanner.Err()
		if err != nil {
			pub.ErrorFunc(ctx, func() error {
				return &Error{
					Msg:      "failed reading input",
					Inner:    err,
					Record:   s.String(),
					Category: SOURCE,
				}
			})
		}
	}()

	return out
}
