package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"leadclip/internal/modules/prospect/domain"
	prospectout "leadclip/internal/modules/prospect/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteCache projects backend list responses into a local table. The
// indexed columns serve the list tab's filters; the rest of the record
// rides along as JSON.
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS prospects (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  company_name TEXT,
  status TEXT NOT NULL,
  user_id TEXT,
  assigned_lh TEXT,
  updated_at TEXT NOT NULL,
  record TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prospects_status ON prospects(status);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create prospects table: %w", err)
	}
	return nil
}

// Replace swaps the whole projection for the fresh backend snapshot.
func (c *SQLiteCache) Replace(ctx context.Context, prospects []domain.Prospect) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache refresh: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM prospects`); err != nil {
		return fmt.Errorf("reset prospects: %w", err)
	}
	const stmt = `
INSERT INTO prospects (id, name, email, company_name, status, user_id, assigned_lh, updated_at, record)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	for _, p := range prospects {
		record, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal prospect %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, stmt,
			p.ID,
			p.Name,
			p.Email,
			p.CompanyName,
			string(p.Status),
			p.UserID,
			p.AssignedLH,
			p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
			string(record),
		); err != nil {
			return fmt.Errorf("insert prospect %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache refresh: %w", err)
	}
	return nil
}

func (c *SQLiteCache) List(ctx context.Context, filter prospectout.ListFilter) ([]domain.Prospect, error) {
	query := `SELECT record FROM prospects`
	var (
		clauses []string
		args    []any
	)
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		clauses = append(clauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.HandlerID != "" {
		clauses = append(clauses, "assigned_lh = ?")
		args = append(args, filter.HandlerID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY updated_at DESC"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prospects: %w", err)
	}
	defer rows.Close()

	var prospects []domain.Prospect
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		p := domain.Prospect{}
		if err := json.Unmarshal([]byte(record), &p); err != nil {
			return nil, fmt.Errorf("decode cached prospect: %w", err)
		}
		prospects = append(prospects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prospects: %w", err)
	}
	return prospects, nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
