package wordsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL picks a random five-letter row from the words table.
type SQL struct {
	DB *sql.DB
}

func (s *SQL) Fetch(ctx context.Context) (string, error) {
	var w string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM words WHERE length(value) = 5 ORDER BY RANDOM() LIMIT 1`,
	).Scan(&w)
	if errors.Is(err, sql.ErrNoRows) {
		err = errors.New("words table is empty")
	}
	return checked("sqlite", w, err)
}

// Count returns the number of rows in the words table.
func (s *SQL) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(1) FROM words`).Scan(&n)
	return n, err
}

// Seed inserts words, ignoring duplicates, in one transaction.
func (s *SQL) Seed(ctx context.Context, list []string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words(value) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, w := range list {
		if _, err := stmt.ExecContext(ctx, w); err != nil {
			return fmt.Errorf("seed %q: %w", w, err)
		}
	}
	return tx.Commit()
}
