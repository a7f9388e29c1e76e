package reviews

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidRating signals a rating outside the 1-5 scale.
	ErrInvalidRating = errors.New("rating must be a number between 1 and 5")
	// ErrEmptyComment signals a comment with no content.
	ErrEmptyComment = errors.New("comment is required")
)

// Store defines the persistence hooks for review workflows.
type Store interface {
	UserIDByEmail(ctx context.Context, email string) (int64, error)
	SubmitReview(ctx context.Context, userID, trackID int64, rating int, comment string) error
	AddComment(ctx context.Context, userID, trackID int64, comment string) error
}

// Service coordinates rating upserts and comment appends.
type Service interface {
	SubmitReview(ctx context.Context, email string, trackID int64, rating int, comment string) error
	AddComment(ctx context.Context, email string, trackID int64, comment string) error
}

type service struct {
	store Store
}

// New constructs a review Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

// SubmitReview upserts the user's rating for the track; a second
// submission for the same pair overwrites the first. A non-empty comment
// is appended in the same transaction as the rating write.
func (s *service) SubmitReview(ctx context.Context, email string, trackID int64, rating int, comment string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	userID, err := s.store.UserIDByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.store.SubmitReview(ctx, userID, trackID, rating, strings.TrimSpace(comment))
}

func (s *service) AddComment(ctx context.Context, email string, trackID int64, comment string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrEmptyComment
	}

	userID, err := s.store.UserIDByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.store.AddComment(ctx, userID, trackID, comment)
}
