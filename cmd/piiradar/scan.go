package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pii-radar/piiradar/internal/adapter"
	"github.com/pii-radar/piiradar/internal/config"
	"github.com/pii-radar/piiradar/internal/engine"
	"github.com/pii-radar/piiradar/internal/extract"
	"github.com/pii-radar/piiradar/internal/walker"
)

func runScan(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	var rf reportingFlags
	rf.register(fs)
	extractDocuments := fs.Bool("extract-documents", false, "extract text from PDF/DOCX/XLSX instead of skipping them")
	noContext := fs.Bool("no-context", false, "disable the Article 9 context analyzer")
	fullPaths := fs.Bool("full-paths", false, "report absolute paths instead of root-relative ones")
	maxDepth := fs.Int("max-depth", 0, "maximum traversal depth (0 = unlimited)")
	threadCount := fs.Int("j", 0, "worker count (0 = runtime.NumCPU())")
	maxFileSizeMB := fs.Int64("max-filesize", 100, "per-file size ceiling in MB")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: piiradar scan [flags] <path>")
		return exitUsage
	}
	root := fs.Arg(0)

	cfg, err := loadOverlayConfig(fs, rf.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if !flagSet(fs, "extract-documents") {
		*extractDocuments = cfg.Scan.ExtractDocuments
	}
	if !flagSet(fs, "no-context") {
		*noContext = cfg.Scan.NoContext
	}
	if !flagSet(fs, "full-paths") {
		*fullPaths = cfg.Scan.FullPaths
	}
	if !flagSet(fs, "max-depth") {
		*maxDepth = cfg.Scan.MaxDepth
	}
	if !flagSet(fs, "j") {
		*threadCount = cfg.Scan.ThreadCount
	}
	if !flagSet(fs, "max-filesize") && cfg.Scan.MaxFileSizeMB > 0 {
		*maxFileSizeMB = cfg.Scan.MaxFileSizeMB
	}
	if !flagSet(fs, "plugin-dir") {
		rf.pluginDir = cfg.Plugin.Dir
	}
	if !flagSet(fs, "no-progress") {
		rf.noProgress = cfg.Scan.NoProgress
	}

	reg, err := buildRegistry(rf.pluginDir, rf.countries)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	var extractors *extract.Registry
	if *extractDocuments {
		extractors = extract.DefaultRegistry()
	}

	fileAdapter := adapter.NewFileAdapter(adapter.FileConfig{
		Root: root,
		Walk: walker.Options{
			MaxDepth:         *maxDepth,
			MaxFileSize:      *maxFileSizeMB * 1024 * 1024,
			ExtractDocuments: *extractDocuments,
		},
		Extractors: extractors,
		FullPaths:  *fullPaths,
	})

	started := time.Now()
	r, err := engine.Scan(ctx, fileAdapter, engine.Config{
		ThreadCount:     *threadCount,
		Registry:        reg,
		ContextAnalyzer: contextAnalyzer(*noContext),
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

// loadOverlayConfig loads fs's --config value via internal/config,
// falling back to defaults. flagSet distinguishes flags the user set
// explicitly from ones still holding their zero value, so CLI values
// take precedence over the config file per spec §6 ("CLI > config >
// defaults").
func loadOverlayConfig(fs *flag.FlagSet, path string) (*config.Config, error) {
	return config.Load(path)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
