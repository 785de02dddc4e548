package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.devnw.com/alog"
	"go.devnw.com/event"
)

// DEFAULTTTL defines the default ttl applied uniformly to generated
// records when no override is configured.
const DEFAULTTTL = 3600

func init() {
	viper.SetEnvPrefix("NSGEN")
}

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Println(err)
		// nolint:gocritic
		os.Exit(1)
	}
}

func exec(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	pub := event.NewPublisher(ctx)
	defer pub.Close()

	err := configLogger(ctx, "nsgen")
	if err != nil {
		log.Fatal(err)
	}

	if viper.GetBool("verbose") {
		alog.Printc(ctx, pub.ReadEvents(0).Interface())
	}

	alog.Errorc(ctx, pub.ReadErrors(0).Interface())

	cfg := NewConfig()

	// Directives own stdout; when handing off to nsupdate they are
	// buffered so the external client receives the whole script.
	var out io.Writer = os.Stdout

	var script bytes.Buffer
	if cfg.Exec {
		out = &script
	}

	pipeline, err := NewPipeline(ctx, pub, cfg, out)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Native {
		updater, err := NewUpdater(ctx, pub, cfg)
		if err != nil {
			log.Fatal(err)
		}

		pipeline.apply = updater
	}

	srcs := Expand(viper.GetStringSlice("input"), args)

	err = pipeline.Run(Lines(ctx, pub, srcs...))
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Exec {
		err = NSUpdate(ctx, cfg, &script)
		if err != nil {
			log.Fatal(err)
		}
	}
}

func configLogger(ctx context.Context, prefix string) error {
	return alog.Global(
		ctx,
		prefix,
		alog.DEFAULTTIMEFORMAT,
		time.UTC,
		0,
		[]alog.Destination{
			{
				Types:  alog.INFO | alog.DEBUG,
				Format: alog.JSON,
				Writer: os.Stderr,
			},
			{
				Types:  alog.ERROR | alog.CRIT | alog.FATAL,
				Format: alog.JSON,
				Writer: os.Stderr,
			},
		}...,
	)
}
