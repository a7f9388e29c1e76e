package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Admin is a privileged account. Admins live in their own credential space
// and have no self-registration flow.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
}

// SongUpdate holds the replacement fields for an admin song update.
type SongUpdate struct {
	TrackName   string
	ArtistName  string
	AlbumName   string
	Genres      string
	ReleaseYear int
}

// AdminByEmail returns the admin account for the email.
func (s *Store) AdminByEmail(ctx context.Context, email string) (Admin, error) {
	var admin Admin
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash
		FROM admins
		WHERE email = $1
	`, email).Scan(&admin.ID, &admin.Email, &admin.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrAdminNotFound
		}
		return Admin{}, fmt.Errorf("lookup admin: %w", err)
	}
	return admin, nil
}

// CreateAdmin inserts an admin account if the email is not taken. Used by
// the bootstrap path; an existing account is left untouched.
func (s *Store) CreateAdmin(ctx context.Context, email, passwordHash string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
	`, email, passwordHash); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// AddSong inserts a track into the catalog and returns its id.
func (s *Store) AddSong(ctx context.Context, song Song) (int64, error) {
	var trackID int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (track_name, artist_name, album_name, album_image, genres, release_year, audio_url, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING track_id
	`, song.TrackName, song.ArtistName, song.AlbumName, song.AlbumImage,
		song.Genres, nullableYear(song.ReleaseYear), song.AudioURL, song.Rating,
	).Scan(&trackID)
	if err != nil {
		return 0, fmt.Errorf("insert song: %w", err)
	}
	return trackID, nil
}

// UpdateSong replaces the core metadata of a track.
func (s *Store) UpdateSong(ctx context.Context, trackID int64, update SongUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET track_name = $2, artist_name = $3, album_name = $4, genres = $5, release_year = $6
		WHERE track_id = $1
	`, trackID, update.TrackName, update.ArtistName, update.AlbumName, update.Genres, nullableYear(update.ReleaseYear))
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// DeleteSong removes a track and all comments, ratings, and likes that
// reference it. The cascade runs in one transaction.
func (s *Store) DeleteSong(ctx context.Context, trackID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int64
	if err := tx.QueryRowContext(ctx, `
		SELECT track_id
		FROM songs
		WHERE track_id = $1
	`, trackID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSongNotFound
		}
		return fmt.Errorf("lookup song: %w", err)
	}

	for _, table := range []string{"comments", "ratings", "liked_songs", "songs"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE track_id = $1", table), trackID,
		); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// MostCommonGenre returns the genre with the most songs whose curated
// rating falls in the bucket: 1 means rating <= 2, 2 means rating = 3,
// 3 means rating >= 4. Returns "none" when no songs match.
func (s *Store) MostCommonGenre(ctx context.Context, bucket int) (string, error) {
	var condition string
	switch bucket {
	case 1:
		condition = "rating <= 2"
	case 2:
		condition = "rating = 3"
	case 3:
		condition = "rating >= 4"
	default:
		return "", fmt.Errorf("invalid rating bucket %d", bucket)
	}

	query := fmt.Sprintf(`
		SELECT genres
		FROM songs
		WHERE %s AND genres <> ''
		GROUP BY genres
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`, condition)

	var genre string
	if err := s.db.QueryRowContext(ctx, query).Scan(&genre); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "none", nil
		}
		return "", fmt.Errorf("query most common genre: %w", err)
	}
	return genre, nil
}

func nullableYear(year int) any {
	if year == 0 {
		return nil
	}
	return year
}
