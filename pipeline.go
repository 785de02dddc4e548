package main

import (
	"context"
	"fmt"
	"io"

	"go.devnw.com/event"
)

// Applier is an execution sink that applies a resolved record's
// forward and reverse transactions directly instead of having them
// rendered into the directive stream.
type Applier interface {
	Apply(r *ResolvedRecord) error
}

func NewPipeline(
	ctx context.Context,
	pub *event.Publisher,
	cfg *Config,
	out io.Writer,
) (*Pipeline, error) {
	err := checkNil(ctx, pub, cfg, out)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		ctx: ctx,
		pub: pub,
		cfg: cfg,
		out: out,
	}, nil
}

// Pipeline feeds raw input lines through normalization, resolution,
// and emission, strictly in input order. Lines are independent: a
// failed line is reported and skipped, never aborting the run.
type Pipeline struct {
	ctx   context.Context
	pub   *event.Publisher
	cfg   *Config
	out   io.Writer
	apply Applier

	// lineno counts every consumed line, blanks and comments
	// included, so diagnostics reference input positions.
	lineno   int
	sinkErrs int
}

// Run consumes the line channel until it closes, writing one
// directive batch per valid record. The server preamble is written
// once before any record output.
//
// The returned error reflects only sink failures; per-line parse and
// resolution failures are published as diagnostics and skipped.
func (p *Pipeline) Run(lines <-chan string) error {
	if p.apply == nil {
		_, err := fmt.Fprintf(p.out, "server %s\n", p.cfg.Server)
		if err != nil {
			return err
		}
	}

	for {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case raw, ok := <-lines:
			if !ok {
				if p.sinkErrs > 0 {
					return fmt.Errorf(
						"%w: %d records failed",
						ErrSinkFailed,
						p.sinkErrs,
					)
				}

				return nil
			}

			err := p.process(raw)
			if err != nil {
				return err
			}
		}
	}
}

func (p *Pipeline) process(raw string) error {
	p.lineno++

	fields, err := Normalize(raw)
	if err != nil {
		p.report(PARSE, "skipping line", err, raw)
		return nil
	}

	// Nothing to parse on this line
	if fields == nil {
		return nil
	}

	record, err := Resolve(fields.Host, fields.Addr, p.cfg)
	if err != nil {
		p.report(RESOLVE, "skipping line", err, raw)
		return nil
	}

	line := p.lineno
	p.pub.EventFunc(p.ctx, func() event.Event {
		return &Event{
			Msg:    "resolved",
			Line:   line,
			Record: record,
		}
	})

	if p.apply != nil {
		err = p.apply.Apply(record)
		if err != nil {
			// Each record's transactions are independent; a sink
			// failure here does not roll back earlier records.
			p.sinkErrs++
			p.report(SINK, "update failed", err, record.String())
		}

		return nil
	}

	for _, directive := range Emit(record, p.cfg) {
		_, err = fmt.Fprintln(p.out, directive)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) report(cat Category, msg string, err error, raw string) {
	line := p.lineno

	p.pub.ErrorFunc(p.ctx, func() error {
		return &Error{
			Msg:      msg,
			Inner:    err,
			Line:     line,
			Record:   raw,
			Category: cat,
		}
	})
}
