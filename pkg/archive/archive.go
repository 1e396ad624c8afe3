// Package archive keeps a rolling history of published items in SQLite so
// low-frequency sources survive between runs and longer-range views can be
// built later.
package archive

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store is the sqlite-backed item archive
type Store struct {
	db *sqlx.DB
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	URL       string    `db:"url"`
	Title     string    `db:"title"`
	Publisher string    `db:"publisher"`
	Category  string    `db:"category"`
	Type      string    `db:"type"`
	Published time.Time `db:"published"`
	Score     float64   `db:"score"`
	Image     string    `db:"image"`
	VideoID   string    `db:"video_id"`
	ShareID   string    `db:"share_id"`
	FirstSeen time.Time `db:"first_seen"`
}

// New opens the archive database and applies the schema
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite writes are serialized anyway

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Store upserts the run's items. Existing rows keep their first_seen and
// their image unless the new row carries one; score and share id follow the
// latest run.
func (s *Store) Store(ctx context.Context, items []domain.Item) error {
	query := `
		INSERT INTO items (url, title, publisher, category, type, published, score, image, video_id, share_id)
		VALUES (:url, :title, :publisher, :category, :type, :published, :score, :image, :video_id, :share_id)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			score = excluded.score,
			share_id = excluded.share_id,
			image = CASE WHEN excluded.image != '' THEN excluded.image ELSE items.image END
	`

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		for _, item := range items {
			if item.URL == "" {
				continue
			}
			if _, err := tx.NamedExecContext(ctx, query, toSQL(&item)); err != nil {
				return fmt.Errorf("upsert item %s: %w", item.URL, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

// Range returns archived items published within [from, to), newest first
func (s *Store) Range(ctx context.Context, from, to time.Time) ([]domain.Item, error) {
	var rows []itemSQL
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM items WHERE published >= ? AND published < ? ORDER BY published DESC",
		from, to)
	if err != nil {
		return nil, fmt.Errorf("range query: %w", err)
	}

	items := make([]domain.Item, 0, len(rows))
	for i := range rows {
		items = append(items, toDomain(&rows[i]))
	}
	return items, nil
}

// Prune deletes items published before the cutoff and returns the count
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE published < ?", olderThan)
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func toSQL(item *domain.Item) *itemSQL {
	return &itemSQL{
		URL:       item.URL,
		Title:     item.Title,
		Publisher: item.Publisher,
		Category:  string(item.Category),
		Type:      string(item.Type),
		Published: item.Published.UTC(),
		Score:     item.Score,
		Image:     item.Image,
		VideoID:   item.VideoID,
		ShareID:   item.ShareID,
	}
}

func toDomain(row *itemSQL) domain.Item {
	return domain.Item{
		URL:       row.URL,
		Title:     row.Title,
		Publisher: row.Publisher,
		Category:  domain.Category(row.Category),
		Type:      domain.ItemType(row.Type),
		Published: row.Published,
		Score:     row.Score,
		Image:     row.Image,
		VideoID:   row.VideoID,
		ShareID:   row.ShareID,
		Weight:    1.0,
	}
}
