package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pii-radar/piiradar/internal/adapter"
	"github.com/pii-radar/piiradar/internal/engine"
)

// headerFlags collects repeatable --header "K:V" flags.
type headerFlags map[string]string

func (h headerFlags) String() string { return "" }

func (h headerFlags) Set(kv string) error {
	k, v, ok := strings.Cut(kv, ":")
	if !ok {
		return fmt.Errorf("invalid --header %q, want K:V", kv)
	}
	h[strings.TrimSpace(k)] = strings.TrimSpace(v)
	return nil
}

func runAPI(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	var rf reportingFlags
	rf.register(fs)
	method := fs.String("method", "GET", "GET|POST|PUT|PATCH|DELETE")
	headers := make(headerFlags)
	fs.Var(headers, "header", `repeatable request header "K:V"`)
	body := fs.String("body", "", "request body")
	timeoutSec := fs.Int("timeout", 30, "per-request timeout in seconds")
	noRedirects := fs.Bool("no-redirects", false, "do not follow HTTP redirects")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: piiradar api [flags] <urls...>")
		return exitUsage
	}

	reg, err := buildRegistry(rf.pluginDir, rf.countries)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	endpoints := make([]adapter.Endpoint, fs.NArg())
	for i, url := range fs.Args() {
		endpoints[i] = adapter.Endpoint{URL: url, Method: *method, Headers: headers, Body: *body}
	}

	httpAdapter := adapter.NewHTTPAdapter(adapter.HTTPConfig{
		Endpoints:       endpoints,
		Timeout:         time.Duration(*timeoutSec) * time.Second,
		FollowRedirects: !*noRedirects,
	})

	started := time.Now()
	r, err := engine.Scan(ctx, httpAdapter, engine.Config{
		Registry:        reg,
		ContextAnalyzer: contextAnalyzer(false),
		Progress:        progressFunc(rf.noProgress),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "scan failed:", err)
		return exitUsage
	}
	r.ScanDurationSeconds = time.Since(started).Seconds()

	filtered, err := applyReportFilters(r, rf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if err := writeReport(filtered, rf); err != nil {
		fmt.Fprintln(os.Stderr, "writing report:", err)
		return exitUsage
	}
	return exitCodeFor(filtered)
}
