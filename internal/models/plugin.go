package models

// PluginPattern is one regex alternative within a plugin descriptor,
// carrying its own confidence level.
type PluginPattern struct {
	Pattern     string `toml:"pattern"`
	Confidence  string `toml:"confidence"`
	Description string `toml:"description,omitempty"`
}

// PluginValidation names the structural and checksum constraints a
// plugin descriptor's candidates must satisfy.
type PluginValidation struct {
	MinLength      int    `toml:"min_length,omitempty"`
	MaxLength      int    `toml:"max_length,omitempty"`
	RequiredPrefix string `toml:"required_prefix,omitempty"`
	RequiredSuffix string `toml:"required_suffix,omitempty"`

	// Checksum selects the validator family: "luhn", "mod11", "iban", or
	// "none". "mod11" defaults to BSN-style 11-proef unless Mod11Variant
	// names a sub-variant (open question §9 of the source spec).
	Checksum     string `toml:"checksum,omitempty"`
	Mod11Variant string `toml:"mod11_variant,omitempty"`
}

// PluginDescriptor is the declarative detector spec loaded from a
// `.detector.toml` file.
type PluginDescriptor struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Country     string `toml:"country"`
	Category    string `toml:"category"`
	Description string `toml:"description,omitempty"`
	Severity    string `toml:"severity"`

	Patterns []PluginPattern `toml:"patterns"`

	Validation *PluginValidation `toml:"validation,omitempty"`

	Examples        []string `toml:"examples,omitempty"`
	ContextKeywords []string `toml:"context_keywords,omitempty"`
}

// DetectorRecord is one registry entry.
type DetectorRecord struct {
	ID              string
	Country         string
	Category        Category
	DefaultSeverity Severity
	Enabled         bool
}
