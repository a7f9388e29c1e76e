package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Credentials carries the fields needed to authenticate a user.
type Credentials struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Verified     bool
}

// Profile is the public view of a user account.
type Profile struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	FavoriteGenre  string `json:"favoriteGenre"`
	FavoriteArtist string `json:"favoriteArtist"`
	Bio            string `json:"bio"`
	Avatar         string `json:"avatar"`
}

// ProfileUpdate holds the optional fields of a profile update. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	FavoriteGenre  *string
	FavoriteArtist *string
	Bio            *string
	Avatar         string
}

// UserSummary is the admin-facing view of a registered user.
type UserSummary struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Verified bool   `json:"emailVerified"`
}

// CreateUser inserts an unverified user with a pending verification code.
func (s *Store) CreateUser(ctx context.Context, email, username, passwordHash, code string, expires time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, username, password_hash, verification_code, verification_expires, email_verified)
		VALUES ($1, $2, $3, $4, $5, FALSE)
	`, email, username, passwordHash, code, expires)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// VerifyEmail checks the pending verification code for the email and, on
// success, marks the account verified and clears the code and expiry.
func (s *Store) VerifyEmail(ctx context.Context, email, code string, now time.Time) error {
	var (
		storedCode sql.NullString
		expires    sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT verification_code, verification_expires
		FROM users
		WHERE email = $1 AND email_verified = FALSE
	`, email).Scan(&storedCode, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotPendingVerification
		}
		return fmt.Errorf("lookup verification: %w", err)
	}

	if !storedCode.Valid || !expires.Valid {
		return ErrCodeExpired
	}
	if now.After(expires.Time) {
		return ErrCodeExpired
	}
	if code != storedCode.String {
		return ErrCodeMismatch
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET email_verified = TRUE, verification_code = NULL, verification_expires = NULL
		WHERE email = $1
	`, email); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// ResetVerification stores a fresh verification code for an unverified user.
func (s *Store) ResetVerification(ctx context.Context, email, code string, expires time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET verification_code = $2, verification_expires = $3
		WHERE email = $1 AND email_verified = FALSE
	`, email, code, expires)
	if err != nil {
		return fmt.Errorf("reset verification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reset verification: %w", err)
	}
	if affected == 0 {
		return ErrNotPendingVerification
	}
	return nil
}

// CredentialsByEmail returns the authentication fields for the email.
func (s *Store) CredentialsByEmail(ctx context.Context, email string) (Credentials, error) {
	var creds Credentials
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, username, password_hash, email_verified
		FROM users
		WHERE email = $1
	`, email).Scan(&creds.ID, &creds.Email, &creds.Username, &creds.PasswordHash, &creds.Verified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Credentials{}, ErrUserNotFound
		}
		return Credentials{}, fmt.Errorf("lookup user: %w", err)
	}
	return creds, nil
}

// UserIDByEmail resolves an email to the user id.
func (s *Store) UserIDByEmail(ctx context.Context, email string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM users
		WHERE email = $1
	`, email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("lookup user id: %w", err)
	}
	return id, nil
}

// ProfileByEmail returns the profile fields for the email.
func (s *Store) ProfileByEmail(ctx context.Context, email string) (Profile, error) {
	var p Profile
	var genre, artist, bio, avatarRef sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT username, email, favorite_genre, favorite_artist, bio, avatar
		FROM users
		WHERE email = $1
	`, email).Scan(&p.Username, &p.Email, &genre, &artist, &bio, &avatarRef)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, fmt.Errorf("lookup profile: %w", err)
	}
	p.FavoriteGenre = genre.String
	p.FavoriteArtist = artist.String
	p.Bio = bio.String
	p.Avatar = avatarRef.String
	return p, nil
}

// UpdateProfile applies the provided fields and returns the merged profile.
// Calling it with no fields set is a no-op that returns the current profile.
func (s *Store) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (Profile, error) {
	var (
		sets []string
		args []any
	)
	argIdx := 1

	if update.FavoriteGenre != nil {
		sets = append(sets, fmt.Sprintf("favorite_genre = $%d", argIdx))
		args = append(args, *update.FavoriteGenre)
		argIdx++
	}
	if update.FavoriteArtist != nil {
		sets = append(sets, fmt.Sprintf("favorite_artist = $%d", argIdx))
		args = append(args, *update.FavoriteArtist)
		argIdx++
	}
	if update.Bio != nil {
		sets = append(sets, fmt.Sprintf("bio = $%d", argIdx))
		args = append(args, *update.Bio)
		argIdx++
	}
	if update.Avatar != "" {
		sets = append(sets, fmt.Sprintf("avatar = $%d", argIdx))
		args = append(args, update.Avatar)
		argIdx++
	}

	if len(sets) > 0 {
		args = append(args, email)
		query := fmt.Sprintf("UPDATE users SET %s WHERE email = $%d", strings.Join(sets, ", "), argIdx)
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return Profile{}, fmt.Errorf("update profile: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return Profile{}, fmt.Errorf("update profile: %w", err)
		}
		if affected == 0 {
			return Profile{}, ErrUserNotFound
		}
	}

	return s.ProfileByEmail(ctx, email)
}

// ListUsers returns every registered user for the admin dashboard.
func (s *Store) ListUsers(ctx context.Context) ([]UserSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, username, email_verified
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []UserSummary
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.Verified); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
