package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.devnw.com/alog"
	"go.devnw.com/event"
)

func testPub(
	ctx context.Context,
	t *testing.T,
) *event.Publisher {
	pub := event.NewPublisher(ctx)
	t.Cleanup(func() { pub.Close() })

	logger, err := alog.New(
		ctx,
		"test",
		alog.DEFAULTTIMEFORMAT,
		time.UTC,
		0,
		alog.TestDestinations(ctx, t)...,
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger.Close() })

	logger.Printc(ctx, pub.ReadEvents(0).Interface())
	logger.Errorc(ctx, pub.ReadErrors(0).Interface())

	return pub
}

func feed(lines ...string) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		for _, line := range lines {
			out <- line
		}
	}()

	return out
}

func Test_Pipeline_Run(t *testing.T) {
	tests := map[string]struct {
		lines  []string
		mutate func(*Config)
		expect string
		lineno int
	}{
		"end-to-end": {
			lines:  []string{"site1,bldg1,host1,192.0.2.5,note"},
			mutate: func(c *Config) { c.DropSuffix = true },
			expect: "server ns1.example.com\n" +
				"update delete host1.example.com. a\n" +
				"update add host1.example.com. 3600 a 192.0.2.5\n" +
				"send\n" +
				"update delete 5.2.0.192.in-addr.arpa.\n" +
				"update add 5.2.0.192.in-addr.arpa. 3600 ptr host1.example.com.\n" +
				"send\n",
			lineno: 1,
		},
		"remove-mode": {
			lines: []string{"site1,bldg1,host1,192.0.2.5,note"},
			mutate: func(c *Config) {
				c.DropSuffix = true
				c.Remove = true
			},
			expect: "server ns1.example.com\n" +
				"update delete host1.example.com. a\n" +
				"send\n" +
				"update delete 5.2.0.192.in-addr.arpa.\n" +
				"send\n",
			lineno: 1,
		},
		"comments-and-blanks": {
			lines: []string{
				"",
				"# just a note",
				"! legacy comment",
			},
			mutate: func(*Config) {},
			expect: "server ns1.example.com\n",
			lineno: 3,
		},
		"bad-lines-reported-and-skipped": {
			lines: []string{
				"justonehost",
				"host1,not-an-ip",
				"host2,192.0.2.7",
			},
			mutate: func(c *Config) { c.DropSuffix = true },
			expect: "server ns1.example.com\n" +
				"update delete host2.example.com. a\n" +
				"update add host2.example.com. 3600 a 192.0.2.7\n" +
				"send\n" +
				"update delete 7.2.0.192.in-addr.arpa.\n" +
				"update add 7.2.0.192.in-addr.arpa. 3600 ptr host2.example.com.\n" +
				"send\n",
			lineno: 3,
		},
		"order-preserved": {
			lines: []string{
				"host1,192.0.2.5",
				"host2=192.0.2.6",
				"host3 192.0.2.7",
			},
			mutate: func(c *Config) {
				c.DropSuffix = true
				c.Reverse = false
				c.DeleteFirst = false
			},
			expect: "server ns1.example.com\n" +
				"update add host1.example.com. 3600 a 192.0.2.5\n" +
				"send\n" +
				"update add host2.example.com. 3600 a 192.0.2.6\n" +
				"send\n" +
				"update add host3.example.com. 3600 a 192.0.2.7\n" +
				"send\n",
			lineno: 3,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pub := testPub(ctx, t)

			cfg := testConfig()
			test.mutate(cfg)

			buf := &bytes.Buffer{}

			pipeline, err := NewPipeline(ctx, pub, cfg, buf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err = pipeline.Run(feed(test.lines...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if buf.String() != test.expect {
				t.Fatalf(
					"expected output\n%q\ngot\n%q",
					test.expect,
					buf.String(),
				)
			}

			if pipeline.lineno != test.lineno {
				t.Fatalf(
					"expected %d lines consumed; got %d",
					test.lineno,
					pipeline.lineno,
				)
			}
		})
	}
}

type testApplier struct {
	records []*ResolvedRecord
	fail    bool
}

func (a *testApplier) Apply(r *ResolvedRecord) error {
	if a.fail {
		return fmt.Errorf("refused")
	}

	a.records = append(a.records, r)

	return nil
}

func Test_Pipeline_Applier(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := testPub(ctx, t)

	cfg := testConfig()
	cfg.DropSuffix = true

	buf := &bytes.Buffer{}

	pipeline, err := NewPipeline(ctx, pub, cfg, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	applier := &testApplier{}
	pipeline.apply = applier

	err = pipeline.Run(feed(
		"host1,192.0.2.5",
		"host2,192.0.2.6",
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Applied records bypass the directive stream entirely
	if buf.Len() != 0 {
		t.Fatalf("expected no output; got %q", buf.String())
	}

	if len(applier.records) != 2 {
		t.Fatalf("expected 2 records; got %d", len(applier.records))
	}

	if applier.records[0].Hostname != "host1.example.com." ||
		applier.records[1].Hostname != "host2.example.com." {
		t.Fatalf("unexpected records: %v", applier.records)
	}
}

func Test_Pipeline_Applier_SinkFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := testPub(ctx, t)

	cfg := testConfig()
	cfg.DropSuffix = true

	pipeline, err := NewPipeline(ctx, pub, cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pipeline.apply = &testApplier{fail: true}

	err = pipeline.Run(feed("host1,192.0.2.5"))
	if !errors.Is(err, ErrSinkFailed) {
		t.Fatalf("expected %v; got %v", ErrSinkFailed, err)
	}
}
