package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmailTaken signals the registration email is already in use.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUserNotFound indicates no user matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrAdminNotFound indicates no admin matches the given email.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrSongNotFound indicates the track does not exist.
	ErrSongNotFound = errors.New("song not found")
	// ErrNotPendingVerification covers both an unknown email and an account
	// that has already completed verification.
	ErrNotPendingVerification = errors.New("invalid email or already verified")
	// ErrCodeExpired indicates the verification code is past its expiry.
	ErrCodeExpired = errors.New("verification code has expired")
	// ErrCodeMismatch indicates the supplied verification code is wrong.
	ErrCodeMismatch = errors.New("invalid verification code")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
