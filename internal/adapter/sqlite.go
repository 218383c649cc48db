package adapter

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/engine"
	"github.com/pii-radar/piiradar/internal/models"
)

// SQLiteAdapter scans rows from a SQLite database file via the pack's
// pure-Go modernc.org/sqlite driver (no cgo toolchain dependency).
type SQLiteAdapter struct {
	cfg DBConfig
}

// NewSQLiteAdapter returns a SQLiteAdapter over cfg. ConnectionString
// is the database file path.
func NewSQLiteAdapter(cfg DBConfig) *SQLiteAdapter {
	return &SQLiteAdapter{cfg: cfg}
}

func (a *SQLiteAdapter) Iter(yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
	db, err := sqlx.Connect("sqlite", a.cfg.ConnectionString)
	if err != nil {
		return &models.AdapterFatalError{Err: fmt.Errorf("opening sqlite database: %w", err)}
	}
	defer db.Close()
	db.SetMaxOpenConns(poolSizeOr(a.cfg.PoolSize, 1))

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

func (a *SQLiteAdapter) tables(db *sqlx.DB) ([]string, error) {
	if len(a.cfg.Tables) > 0 {
		return a.cfg.Tables, nil
	}
	var names []string
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
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

func (a *SQLiteAdapter) iterTable(db *sqlx.DB, table string, yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
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
