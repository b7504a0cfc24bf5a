package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/el-timetable/internal/models"
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

// exists runs a "SELECT 1 ... LIMIT 1" query.
func exists(ctx context.Context, q queryer, what, query string, args ...interface{}) (bool, error) {
	var found int
	if err := q.GetContext(ctx, &found, q.Rebind(query+" LIMIT 1"), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check %s: %w", what, err)
	}
	return true, nil
}

// existsByName checks if another row of table uses the same name. excludeID skips the row being edited.
func existsByName(ctx context.Context, q queryer, table, name, excludeID string) (bool, error) {
	query := "SELECT 1 FROM " + table + " WHERE name = ?"
	args := []interface{}{name}
	if excludeID != "" {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}
	return exists(ctx, q, table+" name", query, args...)
}

// searchByName returns id/name pairs whose name contains term, case-insensitively. Matching runs
// in Go over a name-ordered scan so that LIKE wildcards in term stay literal and non-ASCII letters
// fold the same way on every driver.
func searchByName(ctx context.Context, db *sqlx.DB, table, term string, limit int) ([]models.Lookup, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	rows, err := db.QueryxContext(ctx, fmt.Sprintf("SELECT id, name FROM %s ORDER BY name ASC", table))
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", table, err)
	}
	defer rows.Close()

	items := []models.Lookup{}
	for rows.Next() {
		var item models.Lookup
		if err := rows.StructScan(&item); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		if !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		items = append(items, item)
		if limit > 0 && len(items) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search %s: %w", table, err)
	}
	return items, nil
}

// execAll runs statements in order, stopping at the first failure.
func execAll(ctx context.Context, q queryer, stmts []statement) error {
	for _, s := range stmts {
		if _, err := q.ExecContext(ctx, q.Rebind(s.query), s.args...); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

type statement struct {
	name  string
	query string
	args  []interface{}
}

// inTx runs fn in a transaction, rolling back when fn fails.
func inTx(ctx context.Context, db *sqlx.DB, what string, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s transaction: %w", what, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", what, err)
	}
	return nil
}
