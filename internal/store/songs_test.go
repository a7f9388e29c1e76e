package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListSongsPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT track_id, track_name, artist_name, album_name, album_image, genres, COALESCE(release_year, 0), rating
		FROM songs
		ORDER BY track_name, track_id
		LIMIT $1 OFFSET $2
	`)).
		WithArgs(2, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"track_id", "track_name", "artist_name", "album_name", "album_image", "genres", "release_year", "rating",
		}).
			AddRow(1, "Glory Box", "Portishead", "Dummy", "", "Trip Hop", 1994, 5).
			AddRow(2, "Teardrop", "Massive Attack", "Mezzanine", "", "Trip Hop", 1998, 4))

	songs, err := s.ListSongs(context.Background(), 10, 2)
	if err != nil {
		t.Fatalf("ListSongs: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	if songs[0].TrackName != "Glory Box" || songs[1].ReleaseYear != 1998 {
		t.Fatalf("unexpected songs: %#v", songs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchSongsPattern(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT track_id, track_name, artist_name, album_name, album_image, genres, COALESCE(release_year, 0), rating
		FROM songs
		WHERE track_name ILIKE $1 OR artist_name ILIKE $1 OR album_name ILIKE $1
		ORDER BY track_name, track_id
		LIMIT 50
	`)).
		WithArgs("%tear%").
		WillReturnRows(sqlmock.NewRows([]string{
			"track_id", "track_name", "artist_name", "album_name", "album_image", "genres", "release_year", "rating",
		}).AddRow(2, "Teardrop", "Massive Attack", "Mezzanine", "", "Trip Hop", 1998, 4))

	songs, err := s.SearchSongs(context.Background(), "tear")
	if err != nil {
		t.Fatalf("SearchSongs: %v", err)
	}
	if len(songs) != 1 || songs[0].ArtistName != "Massive Attack" {
		t.Fatalf("unexpected songs: %#v", songs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSongByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT track_id, track_name, artist_name, album_name, album_image, genres, COALESCE(release_year, 0), audio_url, rating
		FROM songs
		WHERE track_id = $1
	`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"track_id", "track_name", "artist_name", "album_name", "album_image", "genres", "release_year", "audio_url", "rating",
		}))

	_, err = s.SongByID(context.Background(), 99)
	if !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSongDetailsAggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT s.track_id, s.track_name, s.artist_name, s.album_name, s.album_image, s.genres,
		       COALESCE(s.release_year, 0), s.audio_url, s.rating,
		       COUNT(DISTINCT r.user_id), COALESCE(AVG(r.rating), 0)
		FROM songs s
		LEFT JOIN ratings r ON s.track_id = r.track_id
		WHERE s.track_id = $1
		GROUP BY s.track_id
	`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"track_id", "track_name", "artist_name", "album_name", "album_image", "genres",
			"release_year", "audio_url", "rating", "rating_count", "average_rating",
		}).AddRow(7, "Kerala", "Bonobo", "Migration", "", "Electronic", 2017, "", 4, 3, 4.5))

	created := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT u.username, c.comment_text, c.created_at, COALESCE(r.rating, 0)
		FROM comments c
		JOIN users u ON c.user_id = u.id
		LEFT JOIN ratings r ON c.user_id = r.user_id AND c.track_id = r.track_id
		WHERE c.track_id = $1
		ORDER BY c.created_at DESC
		LIMIT 10
	`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"username", "comment_text", "created_at", "rating"}).
			AddRow("digger", "best opener on the record", created, 5).
			AddRow("latecomer", "grew on me", created.Add(-time.Hour), 0))

	details, err := s.SongDetails(context.Background(), 7)
	if err != nil {
		t.Fatalf("SongDetails: %v", err)
	}
	if details.RatingCount != 3 || details.AverageRating != 4.5 {
		t.Fatalf("unexpected aggregates: %#v", details)
	}
	if len(details.Comments) != 2 || details.Comments[1].UserRating != 0 {
		t.Fatalf("unexpected comments: %#v", details.Comments)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
