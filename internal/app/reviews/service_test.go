package reviews

import (
	"context"
	"errors"
	"testing"

	"tunecrate/internal/store"
)

type fakeStore struct {
	userID  int64
	rating  int
	comment string
	calls   int
}

func (f *fakeStore) UserIDByEmail(_ context.Context, email string) (int64, error) {
	if email != "user@example.com" {
		return 0, store.ErrUserNotFound
	}
	return 7, nil
}

func (f *fakeStore) SubmitReview(_ context.Context, userID, _ int64, rating int, comment string) error {
	f.userID = userID
	f.rating = rating
	f.comment = comment
	f.calls++
	return nil
}

func (f *fakeStore) AddComment(_ context.Context, userID, _ int64, comment string) error {
	f.userID = userID
	f.comment = comment
	f.calls++
	return nil
}

func TestSubmitReviewValidatesRating(t *testing.T) {
	st := &fakeStore{}
	svc := New(st)

	for _, rating := range []int{0, -1, 6} {
		err := svc.SubmitReview(context.Background(), "user@example.com", 1, rating, "")
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
	if st.calls != 0 {
		t.Fatalf("store must not be called for invalid ratings, got %d calls", st.calls)
	}
}

func TestSubmitReviewResolvesUserAndTrims(t *testing.T) {
	st := &fakeStore{}
	svc := New(st)

	if err := svc.SubmitReview(context.Background(), "user@example.com", 1, 4, "  grew on me  "); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if st.userID != 7 || st.rating != 4 || st.comment != "grew on me" {
		t.Fatalf("unexpected store call: %+v", st)
	}
}

func TestSubmitReviewUnknownUser(t *testing.T) {
	svc := New(&fakeStore{})

	err := svc.SubmitReview(context.Background(), "ghost@example.com", 1, 4, "")
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAddCommentRequiresContent(t *testing.T) {
	st := &fakeStore{}
	svc := New(st)

	for _, comment := range []string{"", "   ", "\n\t"} {
		err := svc.AddComment(context.Background(), "user@example.com", 1, comment)
		if !errors.Is(err, ErrEmptyComment) {
			t.Fatalf("comment %q: expected ErrEmptyComment, got %v", comment, err)
		}
	}
	if st.calls != 0 {
		t.Fatalf("store must not be called for empty comments, got %d calls", st.calls)
	}
}
