package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"player-timeline/roster"
)

// openDB opens the sqlite file and makes sure the appearances table exists.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases alive between queries
	db.SetMaxOpenConns(1)

	if err := initDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initDB(db *sql.DB) error {
	_, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS appearances (
      id INTEGER PRIMARY KEY AUTOINCREMENT,
      player TEXT NOT NULL,
      year REAL,
      level TEXT,

      -- Stats (NULL when the source left them out)
      games REAL,
      avg REAL,
      runs REAL,
      ops REAL,
      obp REAL,

      birth_year REAL,
      debut_year REAL,
      created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );`)
	if err != nil {
		return fmt.Errorf("creating appearances table: %w", err)
	}
	return nil
}

// loadAppearancesFromDB returns every row in insertion order, which is the
// order the roster builder treats as "first encountered".
func loadAppearancesFromDB(ctx context.Context, db *sql.DB) ([]roster.Appearance, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT player, year, level, games, avg, runs, ops, obp, birth_year, debut_year
		FROM appearances ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying appearances: %w", err)
	}
	defer rows.Close()

	var out []roster.Appearance
	for rows.Next() {
		var (
			a     roster.Appearance
			level sql.NullString
			nums  [8]sql.NullFloat64
		)
		if err := rows.Scan(&a.Player, &nums[0], &level, &nums[1], &nums[2], &nums[3], &nums[4], &nums[5], &nums[6], &nums[7]); err != nil {
			return nil, fmt.Errorf("scanning appearance: %w", err)
		}
		a.Level = level.String
		targets := []*roster.Number{&a.Year, &a.Games, &a.Avg, &a.Runs, &a.OPS, &a.OBP, &a.BirthYear, &a.DebutYear}
		for i, t := range targets {
			*t = roster.Number{Value: nums[i].Float64, Valid: nums[i].Valid}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// importAppearances appends records to the table in one transaction.
func importAppearances(ctx context.Context, db *sql.DB, recs []roster.Appearance) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO appearances (player, year, level, games, avg, runs, ops, obp, birth_year, debut_year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range recs {
		_, err := stmt.ExecContext(ctx, a.Player, nullable(a.Year), a.Level,
			nullable(a.Games), nullable(a.Avg), nullable(a.Runs), nullable(a.OPS), nullable(a.OBP),
			nullable(a.BirthYear), nullable(a.DebutYear))
		if err != nil {
			return fmt.Errorf("inserting %s: %w", a.Player, err)
		}
	}
	return tx.Commit()
}

func nullable(n roster.Number) sql.NullFloat64 {
	return sql.NullFloat64{Float64: n.Value, Valid: n.Valid}
}
