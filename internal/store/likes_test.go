package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestLikeSongIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	// Second like hits the conflict clause and affects zero rows.
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO liked_songs (user_id, track_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, track_id) DO NOTHING
	`)).
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.LikeSong(context.Background(), 1, 7); err != nil {
		t.Fatalf("LikeSong: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLikeSongUnknownTrack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO liked_songs (user_id, track_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, track_id) DO NOTHING
	`)).
		WithArgs(int64(1), int64(99)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err = s.LikeSong(context.Background(), 1, 99)
	if !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLikedSongsCarriesOwnRating(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT s.track_id, s.track_name, s.artist_name, s.album_name, s.album_image, s.audio_url, COALESCE(r.rating, 0)
		FROM songs s
		INNER JOIN liked_songs ls ON s.track_id = ls.track_id
		LEFT JOIN ratings r ON s.track_id = r.track_id AND r.user_id = $1
		WHERE ls.user_id = $1
		ORDER BY s.track_name
	`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"track_id", "track_name", "artist_name", "album_name", "album_image", "audio_url", "rating",
		}).
			AddRow(3, "Glory Box", "Portishead", "Dummy", "", "", 5).
			AddRow(2, "Teardrop", "Massive Attack", "Mezzanine", "", "", 0))

	liked, err := s.LikedSongs(context.Background(), 1)
	if err != nil {
		t.Fatalf("LikedSongs: %v", err)
	}
	if len(liked) != 2 {
		t.Fatalf("expected 2 liked songs, got %d", len(liked))
	}
	if liked[0].Rating != 5 || liked[1].Rating != 0 {
		t.Fatalf("unexpected ratings: %#v", liked)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
