package admin

import (
	"context"
	"errors"
	"strings"

	"tunecrate/internal/store"
)

var (
	// ErrInvalidSong signals missing required song fields.
	ErrInvalidSong = errors.New("track name and artist name are required")
	// ErrInvalidBucket signals an unknown rating bucket.
	ErrInvalidBucket = errors.New("invalid rating range")
)

// Store defines the persistence hooks for admin catalog management.
type Store interface {
	AddSong(ctx context.Context, song store.Song) (int64, error)
	UpdateSong(ctx context.Context, trackID int64, update store.SongUpdate) error
	DeleteSong(ctx context.Context, trackID int64) error
	MostCommonGenre(ctx context.Context, bucket int) (string, error)
	ListUsers(ctx context.Context) ([]store.UserSummary, error)
}

// Service exposes the privileged catalog operations.
type Service interface {
	AddSong(ctx context.Context, song store.Song) (int64, error)
	UpdateSong(ctx context.Context, trackID int64, update store.SongUpdate) error
	DeleteSong(ctx context.Context, trackID int64) error
	MostCommonGenre(ctx context.Context, bucket int) (string, error)
	ListUsers(ctx context.Context) ([]store.UserSummary, error)
}

type service struct {
	store Store
}

// New constructs an admin Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) AddSong(ctx context.Context, song store.Song) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	song.TrackName = strings.TrimSpace(song.TrackName)
	song.ArtistName = strings.TrimSpace(song.ArtistName)
	if song.TrackName == "" || song.ArtistName == "" {
		return 0, ErrInvalidSong
	}
	return s.store.AddSong(ctx, song)
}

func (s *service) UpdateSong(ctx context.Context, trackID int64, update store.SongUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(update.TrackName) == "" || strings.TrimSpace(update.ArtistName) == "" {
		return ErrInvalidSong
	}
	return s.store.UpdateSong(ctx, trackID, update)
}

func (s *service) DeleteSong(ctx context.Context, trackID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSong(ctx, trackID)
}

func (s *service) MostCommonGenre(ctx context.Context, bucket int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if bucket < 1 || bucket > 3 {
		return "", ErrInvalidBucket
	}
	return s.store.MostCommonGenre(ctx, bucket)
}

func (s *service) ListUsers(ctx context.Context) ([]store.UserSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}
