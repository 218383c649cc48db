package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pii-radar/piiradar/internal/models"
)

func runDetectors(_ context.Context, args []string) int {
	fs := flag.NewFlagSet("detectors", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "include category and default severity")
	pluginDir := fs.String("plugin-dir", "", "directory of .detector.toml plugin descriptors")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	reg, err := buildRegistry(*pluginDir, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	for _, rec := range reg.Records() {
		printDetectorRecord(rec, *verbose)
	}
	return exitNoPII
}

func printDetectorRecord(rec models.DetectorRecord, verbose bool) {
	if !verbose {
		fmt.Printf("%-20s %s\n", rec.ID, rec.Country)
		return
	}
	fmt.Printf("%-20s country=%-10s category=%-14s default_severity=%-8s enabled=%v\n",
		rec.ID, rec.Country, rec.Category, rec.DefaultSeverity, rec.Enabled)
}
