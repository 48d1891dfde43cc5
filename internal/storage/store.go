package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ErrHistoryNotFound is returned when the browser history file does not
// exist.
var ErrHistoryNotFound = errors.New("browser history database not found")

// HistoryStore is the read side of a Chromium history database.
type HistoryStore interface {
	RecentURLs(ctx context.Context, since int64, limit int) ([]URLRow, error)
	Visits(ctx context.Context, urlID int64) ([]VisitRow, error)
	Close() error
}

// SQLiteHistory implements HistoryStore over a private copy of the
// browser's History file.
type SQLiteHistory struct {
	db *sqlx.DB

	recentURLs   *sqlx.Stmt
	visitsForURL *sqlx.Stmt

	// copyPath is the temporary copy removed on Close.
	copyPath string
}

// OpenHistory copies the History database at path to a temporary file and
// opens the copy read-only. The browser holds a lock on the original while
// it runs.
func OpenHistory(path string) (*SQLiteHistory, error) {
	copyPath, err := snapshotFile(path)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite3", "file:"+copyPath+"?mode=ro")
	if err != nil {
		os.Remove(copyPath)
		return nil, fmt.Errorf("open history copy: %w", err)
	}

	h, err := NewSQLiteHistory(db)
	if err != nil {
		db.Close()
		os.Remove(copyPath)
		return nil, err
	}
	h.copyPath = copyPath
	return h, nil
}

// NewSQLiteHistory wraps an already-open history database.
func NewSQLiteHistory(db *sqlx.DB) (*SQLiteHistory, error) {
	h := &SQLiteHistory{db: db}

	if err := h.checkSchema(); err != nil {
		return nil, err
	}

	if err := h.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return h, nil
}

func snapshotFile(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrHistoryNotFound, path)
		}
		return "", fmt.Errorf("open history: %w", err)
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "browseiq-history-*"+filepath.Ext(path))
	if err != nil {
		return "", fmt.Errorf("create history copy: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("copy history: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close history copy: %w", err)
	}

	return dst.Name(), nil
}

// checkSchema fails early when the file is not a Chromium history
// database.
func (h *SQLiteHistory) checkSchema() error {
	var tables []string
	err := h.db.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('urls', 'visits') ORDER BY name`)
	if err != nil {
		return fmt.Errorf("read history schema: %w", err)
	}
	if len(tables) != 2 {
		return fmt.Errorf("not a browser history database: found tables %v, want [urls visits]", tables)
	}
	return nil
}

func (h *SQLiteHistory) prepareStatements() error {
	var err error

	h.recentURLs, err = h.db.Preparex(`
		SELECT id, url, COALESCE(title, '') AS title, visit_count, last_visit_time
		FROM urls
		WHERE last_visit_time >= ?
		ORDER BY last_visit_time DESC, id DESC
		LIMIT ?
	`)
	if err != nil {
		return err
	}

	h.visitsForURL, err = h.db.Preparex(`
		SELECT id, url, visit_time, COALESCE(from_visit, 0) AS from_visit, transition
		FROM visits
		WHERE url = ?
		ORDER BY visit_time ASC, id ASC
	`)
	if err != nil {
		return err
	}

	return nil
}

// RecentURLs returns up to limit URLs last visited at or after since
// (a WebKit timestamp), newest first.
func (h *SQLiteHistory) RecentURLs(ctx context.Context, since int64, limit int) ([]URLRow, error) {
	if limit <= 0 {
		return []URLRow{}, nil
	}

	rows := []URLRow{}
	if err := h.recentURLs.SelectContext(ctx, &rows, since, limit); err != nil {
		return nil, fmt.Errorf("query recent urls: %w", err)
	}
	return rows, nil
}

// Visits returns every visit recorded for urlID, oldest first.
func (h *SQLiteHistory) Visits(ctx context.Context, urlID int64) ([]VisitRow, error) {
	rows := []VisitRow{}
	if err := h.visitsForURL.SelectContext(ctx, &rows, urlID); err != nil {
		return nil, fmt.Errorf("query visits for url %d: %w", urlID, err)
	}
	return rows, nil
}

// Close closes prepared statements and the database, then removes the
// temporary copy.
func (h *SQLiteHistory) Close() error {
	stmts := []*sqlx.Stmt{h.recentURLs, h.visitsForURL}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}

	err := h.db.Close()
	if h.copyPath != "" {
		if rmErr := os.Remove(h.copyPath); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}
