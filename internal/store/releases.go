package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Release is one catalog entry imported from the dump. It is never
// modified after import.
type Release struct {
	Timestamp   time.Time `db:"timestamp"`
	Hash        string    `db:"hash"`
	TopicID     int64     `db:"topic_id"`
	PostID      int64     `db:"post_id"`
	Author      string    `db:"author"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Size        int64     `db:"size"`
	Category    int64     `db:"category"`
}

// releaseColumns is the projection scanned into Release
const releaseColumns = `timestamp, hash,
	COALESCE(topic_id, 0) AS topic_id, COALESCE(post_id, 0) AS post_id,
	COALESCE(author, '') AS author, COALESCE(title, '') AS title,
	COALESCE(description, '') AS description,
	size, COALESCE(category, 0) AS category`

const insertReleaseSQL = `
	INSERT INTO releases (
		timestamp, hash, topic_id, post_id, author, title, description, size, category
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertReleases inserts a batch of releases in one transaction
func (s *Store) InsertReleases(ctx context.Context, releases []Release) error {
	if len(releases) == 0 {
		return nil
	}

	return s.Transaction(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, insertReleaseSQL)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := range releases {
			r := &releases[i]
			if _, err := stmt.ExecContext(ctx,
				r.Timestamp, r.Hash, r.TopicID, r.PostID, r.Author,
				r.Title, r.Description, r.Size, r.Category,
			); err != nil {
				return fmt.Errorf("failed to insert release %s: %w", r.Hash, err)
			}
		}
		return nil
	})
}

// Count returns the number of releases in the store
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM releases"); err != nil {
		return 0, fmt.Errorf("failed to count releases: %w", err)
	}
	return count, nil
}
