package store

import (
	"context"
	"fmt"
)

// LikedSong is a liked track joined with the user's own rating for it.
type LikedSong struct {
	TrackID    int64  `json:"track_id"`
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	AlbumName  string `json:"album_name"`
	AlbumImage string `json:"album_image"`
	AudioURL   string `json:"audio_url,omitempty"`
	Rating     int    `json:"rating"`
}

// LikeSong records a like for the (user, track) pair. Liking a song twice
// is a no-op.
func (s *Store) LikeSong(ctx context.Context, userID, trackID int64) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO liked_songs (user_id, track_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, track_id) DO NOTHING
	`, userID, trackID); err != nil {
		if isForeignKeyViolation(err) {
			return ErrSongNotFound
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

// LikedSongs returns the user's liked tracks, each with that user's own
// rating (0 when they have not rated it).
func (s *Store) LikedSongs(ctx context.Context, userID int64) ([]LikedSong, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.track_id, s.track_name, s.artist_name, s.album_name, s.album_image, s.audio_url, COALESCE(r.rating, 0)
		FROM songs s
		INNER JOIN liked_songs ls ON s.track_id = ls.track_id
		LEFT JOIN ratings r ON s.track_id = r.track_id AND r.user_id = $1
		WHERE ls.user_id = $1
		ORDER BY s.track_name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query liked songs: %w", err)
	}
	defer rows.Close()

	var liked []LikedSong
	for rows.Next() {
		var song LikedSong
		if err := rows.Scan(
			&song.TrackID, &song.TrackName, &song.ArtistName,
			&song.AlbumName, &song.AlbumImage, &song.AudioURL, &song.Rating,
		); err != nil {
			return nil, fmt.Errorf("scan liked song: %w", err)
		}
		liked = append(liked, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked songs: %w", err)
	}
	return liked, nil
}
