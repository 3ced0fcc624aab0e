// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists a run's extracted tables and reconciliation
// findings in a SQLite database inside the output folder, so repeated runs
// over new report editions can be compared and triaged later.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/datasciencecampus/mobius/internal/dates"
	"github.com/datasciencecampus/mobius/pkg/types"
)

const dbFile = "mobius.db"

// Store manages the run database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run database inside outputDir, creating the
// schema if it does not exist.
func Open(outputDir string) (*Store, error) {
	dbPath := filepath.Join(outputDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS series_rows (
			country TEXT NOT NULL,
			region TEXT NOT NULL,
			plot_name TEXT NOT NULL,
			graph_num INTEGER NOT NULL,
			date TEXT NOT NULL,
			value REAL,
			asterisk INTEGER NOT NULL,
			PRIMARY KEY (country, graph_num, date)
		)`,
		`CREATE TABLE IF NOT EXISTS headline_rows (
			country TEXT NOT NULL,
			region TEXT NOT NULL,
			plot_name TEXT NOT NULL,
			page_num INTEGER NOT NULL,
			plot_num INTEGER NOT NULL,
			headline REAL,
			asterisk INTEGER NOT NULL,
			PRIMARY KEY (country, plot_num)
		)`,
		`CREATE TABLE IF NOT EXISTS mismatches (
			country TEXT NOT NULL,
			region TEXT NOT NULL,
			plot_name TEXT NOT NULL,
			value REAL NOT NULL,
			headline REAL NOT NULL,
			PRIMARY KEY (country, region, plot_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_series_group ON series_rows(region, plot_name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// nullValue maps a Value to its nullable SQL form.
func nullValue(v types.Value) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.Num, Valid: v.Valid}
}

func fromNull(n sql.NullFloat64) types.Value {
	if !n.Valid {
		return types.Missing()
	}
	return types.Numeric(n.Float64)
}

// PutRun replaces one country's rows and findings with a fresh run's output.
// A re-run over unchanged inputs leaves the database byte-identical.
func (s *Store) PutRun(ctx context.Context, country string, series []types.SeriesRow, headlines []types.HeadlineRow, mismatches []types.Mismatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM series_rows WHERE country = ?`,
		`DELETE FROM headline_rows WHERE country = ?`,
		`DELETE FROM mismatches WHERE country = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, country); err != nil {
			return fmt.Errorf("clearing previous run: %w", err)
		}
	}

	for _, r := range series {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO series_rows (country, region, plot_name, graph_num, date, value, asterisk)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Country, r.Region, r.PlotName, r.GraphNum, r.Date.Format(dates.DateFormat), nullValue(r.Value), r.Asterisk)
		if err != nil {
			return fmt.Errorf("inserting series row: %w", err)
		}
	}

	for _, h := range headlines {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO headline_rows (country, region, plot_name, page_num, plot_num, headline, asterisk)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			h.Country, h.Region, h.PlotName, h.PageNum, h.PlotNum, nullValue(h.Headline), h.Asterisk)
		if err != nil {
			return fmt.Errorf("inserting headline row: %w", err)
		}
	}

	for _, m := range mismatches {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO mismatches (country, region, plot_name, value, headline)
			 VALUES (?, ?, ?, ?, ?)`,
			m.Country, m.Region, m.PlotName, m.Value, m.Headline)
		if err != nil {
			return fmt.Errorf("inserting mismatch: %w", err)
		}
	}

	return tx.Commit()
}

// LatestSamples returns the chronologically last non-missing sample of each
// (region, plot_name) group for a country, in group order.
func (s *Store) LatestSamples(ctx context.Context, country string) ([]types.SeriesRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT country, region, plot_name, graph_num, max(date), value, asterisk
		 FROM series_rows
		 WHERE country = ? AND value IS NOT NULL
		 GROUP BY region, plot_name
		 ORDER BY graph_num`, country)
	if err != nil {
		return nil, fmt.Errorf("querying latest samples: %w", err)
	}
	defer rows.Close()
	return scanSeriesRows(rows)
}

// Mismatches returns a country's recorded reconciliation findings.
func (s *Store) Mismatches(ctx context.Context, country string) ([]types.Mismatch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT country, region, plot_name, value, headline
		 FROM mismatches WHERE country = ?
		 ORDER BY region, plot_name`, country)
	if err != nil {
		return nil, fmt.Errorf("querying mismatches: %w", err)
	}
	defer rows.Close()

	var out []types.Mismatch
	for rows.Next() {
		var m types.Mismatch
		if err := rows.Scan(&m.Country, &m.Region, &m.PlotName, &m.Value, &m.Headline); err != nil {
			return nil, fmt.Errorf("scanning mismatch: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanSeriesRows(rows *sql.Rows) ([]types.SeriesRow, error) {
	var out []types.SeriesRow
	for rows.Next() {
		var (
			r       types.SeriesRow
			dateStr string
			value   sql.NullFloat64
		)
		if err := rows.Scan(&r.Country, &r.Region, &r.PlotName, &r.GraphNum, &dateStr, &value, &r.Asterisk); err != nil {
			return nil, fmt.Errorf("scanning series row: %w", err)
		}
		d, err := parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		r.Date = d
		r.Value = fromNull(value)
		out = append(out, r)
	}
	return out, rows.Err()
}
