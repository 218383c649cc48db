package adapter

import "strings"

// RecordSeparator joins a DB row's column values into one synthetic
// text blob (spec §4.12). 0x1f is the ASCII unit separator: unlikely
// to appear in scanned column values, and a non-word character, so
// `\b`-anchored detector patterns see a boundary at it and a match
// made of word characters does not run from one column into the next.
const RecordSeparator = "\x1f"

// DBConfig shapes one database source adapter (postgres/sqlite/mongo).
// Connection pooling and row cursoring are thin per spec §2 (database
// driver wiring is named out of core scope); these fields are the
// adapter's entire surface.
type DBConfig struct {
	ConnectionString string
	Database         string
	Tables           []string // empty = discover every table/collection
	ExcludeTables    []string
	Columns          []string // empty = every column
	ExcludeColumns   []string
	RowLimit         int // 0 = no limit
	SamplePercent    float64
	PoolSize         int
}

func wantColumn(cfg DBConfig, name string) bool {
	if len(cfg.ExcludeColumns) > 0 && contains(cfg.ExcludeColumns, name) {
		return false
	}
	if len(cfg.Columns) == 0 {
		return true
	}
	return contains(cfg.Columns, name)
}

func wantTable(cfg DBConfig, name string) bool {
	if contains(cfg.ExcludeTables, name) {
		return false
	}
	if len(cfg.Tables) == 0 {
		return true
	}
	return contains(cfg.Tables, name)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// rowText joins columns (in order) with RecordSeparator into one
// synthetic text blob, and returns a lookup from byte offset to the
// column that offset falls within — the per-column offsets the DB
// adapter reports via its location_factory (spec §4.12).
func rowText(order []string, values map[string]string) (text string, columnAt func(offset int) string) {
	var sb strings.Builder
	starts := make([]int, len(order))
	for i, col := range order {
		starts[i] = sb.Len()
		sb.WriteString(values[col])
		sb.WriteString(RecordSeparator)
	}
	text = sb.String()

	columnAt = func(offset int) string {
		if len(order) == 0 {
			return ""
		}
		col := order[0]
		for i, s := range starts {
			if offset >= s {
				col = order[i]
			}
		}
		return col
	}
	return text, columnAt
}

func poolSizeOr(configured, fallback int) int {
	if configured > 0 {
		return configured
	}
	return fallback
}
