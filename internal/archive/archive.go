// Package archive stores paginated Deezer collections in SQLite so they can
// be queried offline.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/jfmyers9/dzr/internal/render"
	"github.com/jfmyers9/dzr/pkg/deezer"
	_ "modernc.org/sqlite"
)

// Pager walks the pages of a collection. *deezer.Client implements it.
type Pager interface {
	Pages(ctx context.Context, first *deezer.Response) iter.Seq2[*deezer.Response, error]
}

// Archive manages the export database
type Archive struct {
	db *sql.DB
}

// Item is one exported collection entry
type Item struct {
	Collection string
	Position   int
	ID         string
	Type       string
	Title      string
	Artist     string
	Payload    string // raw JSON of the entry
}

// Collection summarizes one exported collection
type Collection struct {
	Name       string
	Pages      int
	Items      int
	Total      int // as reported by the API, -1 if unknown
	ExportedAt time.Time
}

// ExportResult reports what Export stored
type ExportResult struct {
	Pages     int
	Items     int
	Truncated bool // stopped at the page limit with more pages available
}

// Open creates or opens the archive at path. ":memory:" is accepted.
func Open(path string) (*Archive, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			collection TEXT NOT NULL,
			page_index INTEGER NOT NULL,
			url TEXT NOT NULL,
			total INTEGER NOT NULL,
			item_count INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (collection, page_index)
		);

		CREATE TABLE IF NOT EXISTS items (
			collection TEXT NOT NULL,
			position INTEGER NOT NULL,
			item_id TEXT NOT NULL,
			type TEXT,
			title TEXT,
			artist TEXT,
			payload TEXT NOT NULL,
			PRIMARY KEY (collection, position)
		);

		CREATE INDEX IF NOT EXISTS idx_items_id ON items(item_id);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the database connection
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// SavePage stores one page of collection. offset is the position of the
// page's first item. Returns the number of items stored.
func (a *Archive) SavePage(ctx context.Context, collection string, pageIndex, offset int, page *deezer.Response) (int, error) {
	data := page.Data()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pages (collection, page_index, url, total, item_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (collection, page_index) DO UPDATE SET
			url = excluded.url,
			total = excluded.total,
			item_count = excluded.item_count,
			fetched_at = excluded.fetched_at
	`, collection, pageIndex, page.URL(), page.Total(), len(data), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert page: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (collection, position, item_id, type, title, artist, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (collection, position) DO UPDATE SET
			item_id = excluded.item_id,
			type = excluded.type,
			title = excluded.title,
			artist = excluded.artist,
			payload = excluded.payload
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, item := range data {
		row := render.RowOf(item)
		if _, err := stmt.ExecContext(ctx, collection, offset+i, row.ID, row.Type, row.Title, row.Artist, item.Raw); err != nil {
			return 0, fmt.Errorf("failed to store item %d: %w", offset+i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(data), nil
}

// Export replaces collection with every page reachable from first. When
// maxPages is positive, at most that many pages are stored.
func (a *Archive) Export(ctx context.Context, pager Pager, collection string, first *deezer.Response, maxPages int) (ExportResult, error) {
	var res ExportResult

	if _, err := a.Prune(ctx, collection); err != nil {
		return res, err
	}

	for page, err := range pager.Pages(ctx, first) {
		if err != nil {
			return res, fmt.Errorf("failed to fetch page %d of %s: %w", res.Pages, collection, err)
		}

		n, err := a.SavePage(ctx, collection, res.Pages, res.Items, page)
		if err != nil {
			return res, err
		}
		res.Pages++
		res.Items += n

		if maxPages > 0 && res.Pages >= maxPages {
			_, res.Truncated = page.Next()
			break
		}
	}

	return res, nil
}

// Items returns the stored entries of collection in order.
// Optionally limits the number of results
func (a *Archive) Items(ctx context.Context, collection string, limit int) ([]Item, error) {
	query := `
		SELECT collection, position, item_id, COALESCE(type, ''), COALESCE(title, ''), COALESCE(artist, ''), payload
		FROM items
		WHERE collection = ?
		ORDER BY position ASC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := a.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.Collection, &it.Position, &it.ID, &it.Type, &it.Title, &it.Artist, &it.Payload); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Count returns the number of stored items
// An empty collection counts across all collections
func (a *Archive) Count(ctx context.Context, collection string) (int, error) {
	query := "SELECT COUNT(*) FROM items"
	args := []any{}
	if collection != "" {
		query += " WHERE collection = ?"
		args = append(args, collection)
	}

	var count int
	if err := a.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	return count, nil
}

// Collections lists the exported collections, most recent first
func (a *Archive) Collections(ctx context.Context) ([]Collection, error) {
	query := `
		SELECT collection, COUNT(*), SUM(item_count), MAX(total), MAX(fetched_at)
		FROM pages
		GROUP BY collection
		ORDER BY MAX(fetched_at) DESC, collection ASC
	`

	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer rows.Close()

	var collections []Collection
	for rows.Next() {
		var c Collection
		var exportedUnix int64
		if err := rows.Scan(&c.Name, &c.Pages, &c.Items, &c.Total, &exportedUnix); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		c.ExportedAt = time.Unix(exportedUnix, 0)
		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}

	return collections, nil
}

// Prune removes a collection. Returns the number of items deleted.
func (a *Archive) Prune(ctx context.Context, collection string) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM items WHERE collection = ?", collection)
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM pages WHERE collection = ?", collection); err != nil {
		return 0, fmt.Errorf("failed to delete pages: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return deleted, nil
}
