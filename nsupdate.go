package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	osexec "os/exec"
)

// NSUpdate executes the directive script through an external
// nsupdate process, feeding the script on stdin. The script is the
// same text the stdout sink would carry, so the external client sees
// exactly what an operator reviewing the dry-run output saw.
func NSUpdate(
	ctx context.Context,
	cfg *Config,
	script io.Reader,
) error {
	args := []string{}
	if cfg.KeyFile != "" {
		args = append(args, "-k", cfg.KeyFile)
	}

	cmd := osexec.CommandContext(ctx, cfg.NSUpdate, args...)
	cmd.Stdin = script

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return &Error{
			Msg:      "nsupdate failed",
			Inner:    fmt.Errorf("%w: %s", err, stderr.String()),
			Category: SINK,
		}
	}

	return nil
}
