package adapter

import (
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/engine"
	"github.com/pii-radar/piiradar/internal/models"
)

// PostgresAdapter scans rows from a Postgres database, repurposing the
// teacher's sqlx-over-lib/pq access layer (internal/store) from
// platform-metadata storage to row-scanning.
type PostgresAdapter struct {
	cfg DBConfig
}

// NewPostgresAdapter returns a PostgresAdapter over cfg.
func NewPostgresAdapter(cfg DBConfig) *PostgresAdapter {
	return &PostgresAdapter{cfg: cfg}
}

func (a *PostgresAdapter) Iter(yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
	db, err := sqlx.Connect("postgres", a.cfg.ConnectionString)
	if err != nil {
		return &models.AdapterFatalError{Err: fmt.Errorf("connecting to postgres: %w", err)}
	}
	defer db.Close()
	db.SetMaxOpenConns(poolSizeOr(a.cfg.PoolSize, 5))

	tables, err := a.tables(db)
	if err != nil {
		return &models.AdapterFatalError{Err: err}
	}

	for _, table := range tables {
		if err := a.iterTable(db, table, yield); err != nil {
			return err
		}
	}
	return nil
}

func (a *PostgresAdapter) tables(db *sqlx.DB) ([]string, error) {
	if len(a.cfg.Tables) > 0 {
		return a.cfg.Tables, nil
	}
	var names []string
	query := `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'`
	if err := db.Select(&names, query); err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	var out []string
	for _, n := range names {
		if wantTable(a.cfg, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (a *PostgresAdapter) iterTable(db *sqlx.DB, table string, yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
	query := fmt.Sprintf("SELECT * FROM %q", table)
	if a.cfg.RowLimit > 0 {
		query += fmt.Sprintf(" LIMIT %d", a.cfg.RowLimit)
	}

	rows, err := db.Queryx(query)
	if err != nil {
		return &models.AdapterTransientError{SourceID: table, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		raw := make(map[string]interface{})
		if err := rows.MapScan(raw); err != nil {
			return &models.AdapterTransientError{SourceID: table, Err: err}
		}

		order, values, rowKey := stringifyRow(a.cfg, raw)
		text, columnAt := rowText(order, values)
		sourceID := fmt.Sprintf("%s:%s", table, rowKey)

		provider := func() (string, error) { return text, nil }
		locate := func(offset int) models.Location {
			return models.Location{Kind: models.LocationRow, TableOrCollection: table, RowKey: rowKey, ColumnOrField: columnAt(offset)}
		}

		if err := yield(sourceID, provider, locate); err != nil {
			return err
		}
	}
	return rows.Err()
}

// stringifyRow renders every wanted column of a generic DB row to its
// string form for synthetic-text assembly, and picks a row key (the
// value of the alphabetically first wanted column, a common-enough
// surrogate since PII-Radar never writes back to the row).
func stringifyRow(cfg DBConfig, raw map[string]interface{}) (order []string, values map[string]string, rowKey string) {
	values = make(map[string]string, len(raw))
	for col, v := range raw {
		if !wantColumn(cfg, col) {
			continue
		}
		order = append(order, col)
		values[col] = fmt.Sprintf("%v", v)
	}
	sort.Strings(order)
	if len(order) > 0 {
		rowKey = values[order[0]]
	}
	return order, values, rowKey
}
