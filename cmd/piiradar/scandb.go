package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pii-radar/piiradar/internal/adapter"
	"github.com/pii-radar/piiradar/internal/engine"
)

func runScanDB(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("scan-db", flag.ContinueOnError)
	var rf reportingFlags
	rf.register(fs)
	dbType := fs.String("db-type", "postgres", "postgres|mongodb|sqlite")
	connection := fs.String("connection", "", "database connection string")
	database := fs.String("database", "", "database name (mongodb)")
	tables := fs.String("tables", "", "comma-separated tables/collections to include")
	excludeTables := fs.String("exclude-tables", "", "comma-separated tables/collections to exclude")
	columns := fs.String("columns", "", "comma-separated columns/fields to include")
	excludeColumns := fs.String("exclude-columns", "", "comma-separated columns/fields to exclude")
	rowLimit := fs.Int("row-limit", 0, "maximum rows per table/collection (0 = unlimited)")
	samplePercent := fs.Float64("sample-percent", 100, "percentage of rows to sample (accepted; no database adapter applies it)")
	poolSize := fs.Int("pool-size", 0, "connection pool size")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *connection == "" {
		fmt.Fprintln(os.Stderr, "usage: piiradar scan-db --connection <url> [flags]")
		return exitUsage
	}

	reg, err := buildRegistry(rf.pluginDir, rf.countries)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	dbCfg := adapter.DBConfig{
		ConnectionString: *connection,
		Database:         *database,
		Tables:           parseCSV(*tables),
		ExcludeTables:    parseCSV(*excludeTables),
		Columns:          parseCSV(*columns),
		ExcludeColumns:   parseCSV(*excludeColumns),
		RowLimit:         *rowLimit,
		SamplePercent:    *samplePercent,
		PoolSize:         *poolSize,
	}

	var src engine.SourceAdapter
	switch *dbType {
	case "postgres":
		src = adapter.NewPostgresAdapter(dbCfg)
	case "sqlite":
		src = adapter.NewSQLiteAdapter(dbCfg)
	case "mongodb":
		src = adapter.NewMongoAdapter(dbCfg)
	default:
		fmt.Fprintf(os.Stderr, "piiradar: unknown --db-type %q\n", *dbType)
		return exitUsage
	}

	started := time.Now()
	r, err := engine.Scan(ctx, src, engine.Config{
		Registry: reg,
		Progress: progressFunc(rf.noProgress),
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
