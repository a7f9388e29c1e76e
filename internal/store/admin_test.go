package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAddSongReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO songs (track_name, artist_name, album_name, album_image, genres, release_year, audio_url, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING track_id
	`)).
		WithArgs("Kerala", "Bonobo", "Migration", "", "Electronic", 2017, "", 4).
		WillReturnRows(sqlmock.NewRows([]string{"track_id"}).AddRow(42))

	id, err := s.AddSong(context.Background(), Song{
		TrackName:   "Kerala",
		ArtistName:  "Bonobo",
		AlbumName:   "Migration",
		Genres:      "Electronic",
		ReleaseYear: 2017,
		Rating:      4,
	})
	if err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected track id 42, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateSongNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE songs
		SET track_name = $2, artist_name = $3, album_name = $4, genres = $5, release_year = $6
		WHERE track_id = $1
	`)).
		WithArgs(int64(99), "Kerala", "Bonobo", "Migration", "Electronic", 2017).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.UpdateSong(context.Background(), 99, SongUpdate{
		TrackName:   "Kerala",
		ArtistName:  "Bonobo",
		AlbumName:   "Migration",
		Genres:      "Electronic",
		ReleaseYear: 2017,
	})
	if !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteSongCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT track_id
		FROM songs
		WHERE track_id = $1
	`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"track_id"}).AddRow(7))
	for _, table := range []string{"comments", "ratings", "liked_songs", "songs"} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM "+table+" WHERE track_id = $1")).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := s.DeleteSong(context.Background(), 7); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteSongNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT track_id
		FROM songs
		WHERE track_id = $1
	`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err = s.DeleteSong(context.Background(), 99)
	if !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMostCommonGenreBuckets(t *testing.T) {
	tests := []struct {
		bucket    int
		condition string
	}{
		{1, "rating <= 2"},
		{2, "rating = 3"},
		{3, "rating >= 4"},
	}

	for _, tt := range tests {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock.New: %v", err)
		}

		s := New(db)

		mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT genres
		FROM songs
		WHERE `+tt.condition+` AND genres <> ''
		GROUP BY genres
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`)).
			WillReturnRows(sqlmock.NewRows([]string{"genres"}).AddRow("Trip Hop"))

		genre, err := s.MostCommonGenre(context.Background(), tt.bucket)
		if err != nil {
			t.Fatalf("MostCommonGenre(%d): %v", tt.bucket, err)
		}
		if genre != "Trip Hop" {
			t.Fatalf("bucket %d: expected Trip Hop, got %q", tt.bucket, genre)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("bucket %d: unmet expectations: %v", tt.bucket, err)
		}
		db.Close()
	}
}

func TestMostCommonGenreEmptyCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT genres
		FROM songs
		WHERE rating >= 4 AND genres <> ''
		GROUP BY genres
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`)).
		WillReturnError(sql.ErrNoRows)

	genre, err := s.MostCommonGenre(context.Background(), 3)
	if err != nil {
		t.Fatalf("MostCommonGenre: %v", err)
	}
	if genre != "none" {
		t.Fatalf("expected none, got %q", genre)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMostCommonGenreInvalidBucket(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	if _, err := s.MostCommonGenre(context.Background(), 4); err == nil {
		t.Fatal("expected error for invalid bucket")
	}
}
