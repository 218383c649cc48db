package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pii-radar/piiradar/internal/config"
	"github.com/pii-radar/piiradar/internal/contextan"
	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/engine"
	"github.com/pii-radar/piiradar/internal/models"
	"github.com/pii-radar/piiradar/internal/plugin"
	"github.com/pii-radar/piiradar/internal/registry"
	"github.com/pii-radar/piiradar/internal/result"
)

// reportingFlags are shared across every scanning verb (spec §6).
type reportingFlags struct {
	format        string
	output        string
	countries     string
	minConfidence string
	pluginDir     string
	configPath    string
	noProgress    bool
}

func (f *reportingFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.format, "format", "terminal", "report format: terminal|json|json-compact|html|csv")
	fs.StringVar(&f.output, "output", "", "write the report to this file instead of stdout")
	fs.StringVar(&f.countries, "countries", "", "comma-separated ISO country codes to restrict national detectors to")
	fs.StringVar(&f.minConfidence, "min-confidence", "low", "minimum confidence to report: low|medium|high")
	fs.StringVar(&f.pluginDir, "plugin-dir", "", "directory of .detector.toml plugin descriptors")
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.BoolVar(&f.noProgress, "no-progress", false, "suppress the progress line on stderr")
}

// buildRegistry assembles the built-in detectors, layers any plugin
// descriptors found in pluginDir (falling back to
// config.EnvPluginDir), and applies the --countries filter.
func buildRegistry(pluginDir, countriesCSV string) (*registry.Registry, error) {
	reg, err := registry.Build(detector.BuiltinDetectors(detector.DefaultEntropyConfig)...)
	if err != nil {
		return nil, fmt.Errorf("building built-in registry: %w", err)
	}

	dir := pluginDir
	if dir == "" {
		dir = os.Getenv(config.EnvPluginDir)
	}
	if dir != "" {
		plugins, err := plugin.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("loading plugin directory %q: %w", dir, err)
		}
		if len(plugins) > 0 {
			reg, err = reg.Layer(plugins...)
			if err != nil {
				return nil, fmt.Errorf("layering plugin detectors: %w", err)
			}
		}
	}

	if countries := parseCSV(countriesCSV); len(countries) > 0 {
		reg = reg.FilterCountries(toSet(countries))
	}
	return reg, nil
}

// applyReportFilters runs the confidence and country filters named in
// spec §4.11, in that order (country narrows the detector set up
// front; confidence narrows the result set after scanning).
func applyReportFilters(r *models.ScanResults, f reportingFlags) (*models.ScanResults, error) {
	level, ok := models.ParseConfidence(f.minConfidence)
	if !ok {
		return nil, fmt.Errorf("invalid --min-confidence %q", f.minConfidence)
	}
	filtered := result.FilterByMinConfidence(r, level)
	if countries := parseCSV(f.countries); len(countries) > 0 {
		filtered = result.FilterByCountries(filtered, toSet(countries))
	}
	return filtered, nil
}

func contextAnalyzer(noContext bool) *contextan.Analyzer {
	if noContext {
		return nil
	}
	return contextan.New(120)
}

func progressFunc(quiet bool) engine.ProgressFunc {
	if quiet {
		return nil
	}
	return func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rscanning... %d/%d", done, total)
		if done == total {
			fmt.Fprintln(os.Stderr)
		}
	}
}

// writeReport renders r in the requested format to either stdout or
// f.output, per spec §6's persisted-format schemas.
func writeReport(r *models.ScanResults, f reportingFlags) error {
	var w *os.File = os.Stdout
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("creating output file %q: %w", f.output, err)
		}
		defer file.Close()
		w = file
	}

	switch f.format {
	case "terminal":
		return writeTerminal(w, r)
	case "json":
		return writeJSON(w, r, true)
	case "json-compact":
		return writeJSON(w, r, false)
	case "csv":
		return writeCSV(w, r)
	case "html":
		return writeHTML(w, r)
	default:
		return fmt.Errorf("unknown --format %q", f.format)
	}
}

// exitCodeFor implements spec §6's exit-code contract for a completed
// scan: 1 when any match survived filtering, 0 otherwise.
func exitCodeFor(r *models.ScanResults) int {
	if r.TotalMatches > 0 {
		return exitPIIFound
	}
	return exitNoPII
}

func parseCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
