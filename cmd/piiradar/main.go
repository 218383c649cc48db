// Command piiradar is the PII-Radar CLI: scan filesystems, databases,
// HTTP APIs, and (bonus) S3 buckets for PII, and list the detector
// registry. Grounded on nelssec-qualys-dspm's cmd/dspm/main.go
// (stdlib flag, context cancellation on SIGINT/SIGTERM), generalized
// from one verb to four-plus with a per-verb flag.NewFlagSet.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes per spec §6.
const (
	exitNoPII    = 0
	exitPIIFound = 1
	exitUsage    = 2
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitUsage
	}

	verb, rest := args[0], args[1:]
	if verb == "-version" || verb == "--version" {
		fmt.Printf("piiradar v%s (built %s)\n", version, buildTime)
		return exitNoPII
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nshutting down...")
		cancel()
	}()

	switch verb {
	case "scan":
		return runScan(ctx, rest)
	case "scan-db":
		return runScanDB(ctx, rest)
	case "api":
		return runAPI(ctx, rest)
	case "scan-s3":
		return runScanS3(ctx, rest)
	case "detectors":
		return runDetectors(ctx, rest)
	default:
		fmt.Fprintf(os.Stderr, "piiradar: unknown command %q\n", verb)
		usage()
		return exitUsage
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: piiradar <command> [flags]

commands:
  scan <path>        scan a filesystem tree
  scan-db             scan a relational or document database
  api <urls...>       scan HTTP API responses
  scan-s3             scan an S3 bucket
  detectors           list the detector registry
  -version            print the version and exit`)
}
