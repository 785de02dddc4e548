package main

import (
	"fmt"
)

// DirectiveBatch is the ordered nsupdate directive sequence for one
// record: at most two transactions, forward then reverse, each closed
// by a send directive.
type DirectiveBatch []string

// Emit produces the update directives for one resolved record.
//
// Every opened transaction is closed with a send even when nothing
// was queued into it; the update protocol expects each batch to be
// committed explicitly, and an empty transaction is valid.
func Emit(r *ResolvedRecord, cfg *Config) DirectiveBatch {
	var batch DirectiveBatch

	if cfg.Forward {
		if cfg.DeleteFirst {
			batch = append(batch, fmt.Sprintf(
				"update delete %s %s",
				r.Hostname,
				r.Type(),
			))
		}

		if r.Mode != REMOVE {
			batch = append(batch, fmt.Sprintf(
				"update add %s %d %s %s",
				r.Hostname,
				cfg.TTL,
				r.Type(),
				r.Addr.Text,
			))
		}

		if cfg.Show {
			batch = append(batch, "show")
		}

		batch = append(batch, "send")
	}

	if cfg.Reverse {
		// An address reverse-resolves to exactly one name, so the
		// PTR set is cleared unconditionally before any add.
		batch = append(batch, fmt.Sprintf(
			"update delete %s",
			r.Addr.Reverse,
		))

		if r.Mode != REMOVE {
			batch = append(batch, fmt.Sprintf(
				"update add %s %d ptr %s",
				r.Addr.Reverse,
				cfg.TTL,
				r.Hostname,
			))
		}

		if cfg.Show {
			batch = append(batch, "show")
		}

		batch = append(batch, "send")
	}

	return batch
}
