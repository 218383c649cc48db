// Package config implements PII-Radar's declarative configuration
// file: `${VAR}`-expanded YAML loaded once at startup. The `scan` verb
// overlays it: explicitly set CLI flags override file values, and file
// values override built-in defaults. The other verbs do not load the
// file. Grounded on
// nelssec-qualys-dspm's internal/config.Load (os.ExpandEnv +
// yaml.Unmarshal + applyDefaults), narrowed from platform/server
// settings to the scan engine's own knobs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors the CLI surface of spec §6 with one section per verb
// plus plugin and reporting sections. Only the `scan` and `plugin`
// sections are read by a verb; `scan_db`, `api` and `reporting` are
// parsed and defaulted but no verb applies them.
type Config struct {
	Scan      ScanConfig      `yaml:"scan"`
	ScanDB    ScanDBConfig    `yaml:"scan_db"`
	API       APIConfig       `yaml:"api"`
	Plugin    PluginConfig    `yaml:"plugin"`
	Reporting ReportingConfig `yaml:"reporting"`
}

// ScanConfig backs the `scan <path>` verb.
type ScanConfig struct {
	ExtractDocuments bool  `yaml:"extract_documents"`
	NoContext        bool  `yaml:"no_context"`
	NoProgress       bool  `yaml:"no_progress"`
	FullPaths        bool  `yaml:"full_paths"`
	MaxDepth         int   `yaml:"max_depth"`
	ThreadCount      int   `yaml:"thread_count"`
	MaxFileSizeMB    int64 `yaml:"max_filesize_mb"`
}

// ScanDBConfig mirrors the `scan-db` verb's flags; the verb does not
// read it.
type ScanDBConfig struct {
	DBType         string   `yaml:"db_type"` // postgres | mongodb | sqlite
	Connection     string   `yaml:"connection"`
	Database       string   `yaml:"database"`
	Tables         []string `yaml:"tables"`
	ExcludeTables  []string `yaml:"exclude_tables"`
	Columns        []string `yaml:"columns"`
	ExcludeColumns []string `yaml:"exclude_columns"`
	RowLimit       int      `yaml:"row_limit"`
	SamplePercent  float64  `yaml:"sample_percent"`
	PoolSize       int      `yaml:"pool_size"`
}

// APIConfig mirrors the `api <urls...>` verb's flags; the verb does
// not read it.
type APIConfig struct {
	Method         string            `yaml:"method"`
	Headers        map[string]string `yaml:"headers"`
	Body           string            `yaml:"body"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	NoRedirects    bool              `yaml:"no_redirects"`
}

// APITimeout returns the API verb's per-request timeout as a
// time.Duration for http.Client construction.
func (c APIConfig) APITimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PluginConfig locates declarative `.detector.toml` descriptors.
type PluginConfig struct {
	Dir string `yaml:"dir"`
}

// ReportingConfig mirrors the reporting flags shared by every verb;
// no verb reads it (reporting comes from the CLI flags alone).
type ReportingConfig struct {
	Format        string   `yaml:"format"` // terminal | json | json-compact | html | csv
	Output        string   `yaml:"output"`
	Countries     []string `yaml:"countries"`
	MinConfidence string   `yaml:"min_confidence"` // low | medium | high
}

// EnvPluginDir is the environment variable used as the --plugin-dir
// default when neither the flag nor the config file set one (spec §6).
const EnvPluginDir = "PII_RADAR_PLUGIN_DIR"

// Load reads and parses path after `${VAR}` expansion. A missing file
// is not an error: Load returns defaultConfig() so a bare invocation
// with no --config flag still runs.
func Load(path string) (*Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.Expand(string(data), envLookup)

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// envLookup resolves `${VAR}` references, leaving the reference intact
// (rather than substituting an empty string) when the variable is
// unset, so a missing credential fails loudly downstream instead of
// silently becoming an empty connection string.
func envLookup(name string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return "${" + name + "}"
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Scan.MaxFileSizeMB == 0 {
		c.Scan.MaxFileSizeMB = 100
	}

	if c.ScanDB.RowLimit == 0 {
		c.ScanDB.RowLimit = 10000
	}
	if c.ScanDB.PoolSize == 0 {
		c.ScanDB.PoolSize = 5
	}
	if c.ScanDB.SamplePercent == 0 {
		c.ScanDB.SamplePercent = 100
	}

	if c.API.Method == "" {
		c.API.Method = "GET"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}

	if c.Plugin.Dir == "" {
		c.Plugin.Dir = os.Getenv(EnvPluginDir)
	}

	if c.Reporting.Format == "" {
		c.Reporting.Format = "terminal"
	}
	if c.Reporting.MinConfidence == "" {
		c.Reporting.MinConfidence = "low"
	}
}
