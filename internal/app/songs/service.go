package songs

import (
	"context"
	"errors"
	"strings"

	"tunecrate/internal/store"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
	minQueryLength  = 2
)

// ErrQueryTooShort signals a search query below the minimum length.
var ErrQueryTooShort = errors.New("search query must be at least 2 characters long")

// Store defines the catalog reads required by the song service.
type Store interface {
	ListSongs(ctx context.Context, offset, limit int) ([]store.Song, error)
	SearchSongs(ctx context.Context, query string) ([]store.Song, error)
	SongByID(ctx context.Context, trackID int64) (store.Song, error)
	SongDetails(ctx context.Context, trackID int64) (store.SongDetails, error)
}

// Service exposes catalog browsing operations.
type Service interface {
	List(ctx context.Context, offset, limit int) ([]store.Song, error)
	Search(ctx context.Context, query string) ([]store.Song, error)
	Get(ctx context.Context, trackID int64) (store.Song, error)
	Details(ctx context.Context, trackID int64) (store.SongDetails, error)
}

type service struct {
	store Store
}

// New wires a song Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, offset, limit int) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.store.ListSongs(ctx, offset, limit)
}

func (s *service) Search(ctx context.Context, query string) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return nil, ErrQueryTooShort
	}
	return s.store.SearchSongs(ctx, query)
}

func (s *service) Get(ctx context.Context, trackID int64) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.SongByID(ctx, trackID)
}

func (s *service) Details(ctx context.Context, trackID int64) (store.SongDetails, error) {
	if err := ctx.Err(); err != nil {
		return store.SongDetails{}, err
	}
	return s.store.SongDetails(ctx, trackID)
}
