package store

import (
	"context"
	"fmt"
)

// SubmitReview upserts the user's rating for the track and, when comment is
// non-empty, appends a comment. Both writes happen in one transaction so a
// failure cannot leave the rating updated without the comment.
func (s *Store) SubmitReview(ctx context.Context, userID, trackID int64, rating int, comment string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ratings (user_id, track_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, track_id) DO UPDATE SET rating = EXCLUDED.rating
	`, userID, trackID, rating); err != nil {
		if isForeignKeyViolation(err) {
			return ErrSongNotFound
		}
		return fmt.Errorf("upsert rating: %w", err)
	}

	if comment != "" {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comments (user_id, track_id, comment_text)
			VALUES ($1, $2, $3)
		`, userID, trackID, comment); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// AddComment appends a comment to the track's feed. Comments are
// append-only; there is no edit or delete.
func (s *Store) AddComment(ctx context.Context, userID, trackID int64, comment string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (user_id, track_id, comment_text)
		VALUES ($1, $2, $3)
	`, userID, trackID, comment); err != nil {
		if isForeignKeyViolation(err) {
			return ErrSongNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}
