package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Song represents a track in the catalog.
type Song struct {
	TrackID     int64  `json:"track_id"`
	TrackName   string `json:"track_name"`
	ArtistName  string `json:"artist_name"`
	AlbumName   string `json:"album_name"`
	AlbumImage  string `json:"album_image"`
	Genres      string `json:"genres"`
	ReleaseYear int    `json:"release_year,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
	Rating      int    `json:"rating"`
}

// Comment is one entry in a track's comment feed, joined with the
// commenter's username and their current rating for the track.
type Comment struct {
	Username    string    `json:"username"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	UserRating  int       `json:"user_rating"`
}

// SongDetails is a song joined with its review aggregates.
type SongDetails struct {
	Song
	RatingCount   int       `json:"rating_count"`
	AverageRating float64   `json:"average_rating"`
	Comments      []Comment `json:"comments"`
}

// ListSongs returns a page of the catalog ordered by track name.
func (s *Store) ListSongs(ctx context.Context, offset, limit int) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT track_id, track_name, artist_name, album_name, album_image, genres, COALESCE(release_year, 0), rating
		FROM songs
		ORDER BY track_name, track_id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows)
}

// SearchSongs performs a case-insensitive substring match across track,
// artist, and album names, capped at 50 results. Query length is validated
// by the caller.
func (s *Store) SearchSongs(ctx context.Context, query string) ([]Song, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT track_id, track_name, artist_name, album_name, album_image, genres, COALESCE(release_year, 0), rating
		FROM songs
		WHERE track_name ILIKE $1 OR artist_name ILIKE $1 OR album_name ILIKE $1
		ORDER BY track_name, track_id
		LIMIT 50
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows)
}

// SongByID returns a single track.
func (s *Store) SongByID(ctx context.Context, trackID int64) (Song, error) {
	var song Song
	err := s.db.QueryRowContext(ctx, `
		SELECT track_id, track_name, artist_name, album_name, album_image, genres, COALESCE(release_year, 0), audio_url, rating
		FROM songs
		WHERE track_id = $1
	`, trackID).Scan(
		&song.TrackID, &song.TrackName, &song.ArtistName, &song.AlbumName,
		&song.AlbumImage, &song.Genres, &song.ReleaseYear, &song.AudioURL, &song.Rating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, fmt.Errorf("lookup song: %w", err)
	}
	return song, nil
}

// SongDetails returns the track joined with its average rating, the number
// of distinct raters, and the 10 most recent comments. The average is 0
// when no ratings exist; each comment carries the commenter's current
// rating for the track, 0 when they have none.
func (s *Store) SongDetails(ctx context.Context, trackID int64) (SongDetails, error) {
	var details SongDetails
	err := s.db.QueryRowContext(ctx, `
		SELECT s.track_id, s.track_name, s.artist_name, s.album_name, s.album_image, s.genres,
		       COALESCE(s.release_year, 0), s.audio_url, s.rating,
		       COUNT(DISTINCT r.user_id), COALESCE(AVG(r.rating), 0)
		FROM songs s
		LEFT JOIN ratings r ON s.track_id = r.track_id
		WHERE s.track_id = $1
		GROUP BY s.track_id
	`, trackID).Scan(
		&details.TrackID, &details.TrackName, &details.ArtistName, &details.AlbumName,
		&details.AlbumImage, &details.Genres, &details.ReleaseYear, &details.AudioURL,
		&details.Rating, &details.RatingCount, &details.AverageRating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SongDetails{}, ErrSongNotFound
		}
		return SongDetails{}, fmt.Errorf("lookup song details: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.username, c.comment_text, c.created_at, COALESCE(r.rating, 0)
		FROM comments c
		JOIN users u ON c.user_id = u.id
		LEFT JOIN ratings r ON c.user_id = r.user_id AND c.track_id = r.track_id
		WHERE c.track_id = $1
		ORDER BY c.created_at DESC
		LIMIT 10
	`, trackID)
	if err != nil {
		return SongDetails{}, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.Username, &c.CommentText, &c.CreatedAt, &c.UserRating); err != nil {
			return SongDetails{}, fmt.Errorf("scan comment: %w", err)
		}
		details.Comments = append(details.Comments, c)
	}
	if err := rows.Err(); err != nil {
		return SongDetails{}, fmt.Errorf("iterate comments: %w", err)
	}

	return details, nil
}

func scanSongs(rows *sql.Rows) ([]Song, error) {
	var songs []Song
	for rows.Next() {
		var song Song
		if err := rows.Scan(
			&song.TrackID, &song.TrackName, &song.ArtistName, &song.AlbumName,
			&song.AlbumImage, &song.Genres, &song.ReleaseYear, &song.Rating,
		); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}
