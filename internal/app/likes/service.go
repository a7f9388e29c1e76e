package likes

import (
	"context"

	"tunecrate/internal/store"
)

// Store defines the persistence hooks for like workflows.
type Store interface {
	UserIDByEmail(ctx context.Context, email string) (int64, error)
	LikeSong(ctx context.Context, userID, trackID int64) error
	LikedSongs(ctx context.Context, userID int64) ([]store.LikedSong, error)
}

// Service coordinates the per-user liked-song list.
type Service interface {
	Like(ctx context.Context, email string, trackID int64) error
	ListLiked(ctx context.Context, email string) ([]store.LikedSong, error)
}

type service struct {
	store Store
}

// New constructs a like Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Like(ctx context.Context, email string, trackID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	userID, err := s.store.UserIDByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.store.LikeSong(ctx, userID, trackID)
}

func (s *service) ListLiked(ctx context.Context, email string) ([]store.LikedSong, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	userID, err := s.store.UserIDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.store.LikedSongs(ctx, userID)
}
