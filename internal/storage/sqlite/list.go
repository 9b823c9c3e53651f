package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/tuskchat/pkg/listidx"
	"github.com/sandevgo/tuskchat/pkg/log"
)

// ListStore keeps Redis style lists in the list_entries table.
// Row ids give insertion order.
type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func count(ctx context.Context, q querier, key string) (int64, error) {
	var n int64
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM list_entries WHERE list_key = ?`, key).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count list entries: %w", err)
	}
	return n, nil
}

func (s *ListStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	n, err := count(ctx, s.db, key)
	if err != nil {
		return nil, err
	}

	from, to, ok := listidx.Bounds(start, stop, n)
	if !ok {
		return []string{}, nil
	}

	query := `SELECT value FROM list_entries WHERE list_key = ? ORDER BY id ASC LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, key, to-from, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query list entries: %w", err)
	}
	defer rows.Close()

	items := make([]string, 0, to-from)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan list entry: %w", err)
		}
		items = append(items, value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Str("key", key).Int("count", len(items)).Msg("loaded list entries")
	return items, nil
}

func (s *ListStore) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, v := range values {
		if _, err := tx.ExecContext(ctx, `INSERT INTO list_entries (list_key, value) VALUES (?, ?)`, key, v); err != nil {
			return 0, fmt.Errorf("failed to insert list entry: %w", err)
		}
	}

	n, err := count(ctx, tx, key)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func (s *ListStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	n, err := count(ctx, tx, key)
	if err != nil {
		return err
	}

	from, to, ok := listidx.Bounds(start, stop, n)
	switch {
	case !ok:
		_, err = tx.ExecContext(ctx, `DELETE FROM list_entries WHERE list_key = ?`, key)
	case from == 0 && to == n:
		return nil
	default:
		_, err = tx.ExecContext(ctx, `
			DELETE FROM list_entries
			WHERE list_key = ? AND id NOT IN (
				SELECT id FROM list_entries WHERE list_key = ? ORDER BY id ASC LIMIT ? OFFSET ?
			)`, key, key, to-from, from)
	}
	if err != nil {
		return fmt.Errorf("failed to trim list: %w", err)
	}
	return tx.Commit()
}

func (s *ListStore) Del(ctx context.Context, key string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM list_entries WHERE list_key = ?`, key)
	if err != nil {
		return 0, fmt.Errorf("failed to delete list: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		return 1, nil
	}
	return 0, nil
}
