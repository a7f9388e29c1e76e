package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"tunecrate/internal/auth"
	"tunecrate/internal/mail"
	"tunecrate/internal/store"
)

// codeTTL is how long an emailed verification code stays valid.
const codeTTL = 10 * time.Minute

// Store describes the persistence operations required by the auth service.
type Store interface {
	CreateUser(ctx context.Context, email, username, passwordHash, code string, expires time.Time) error
	VerifyEmail(ctx context.Context, email, code string, now time.Time) error
	ResetVerification(ctx context.Context, email, code string, expires time.Time) error
	CredentialsByEmail(ctx context.Context, email string) (store.Credentials, error)
	ProfileByEmail(ctx context.Context, email string) (store.Profile, error)
	UpdateProfile(ctx context.Context, email string, update store.ProfileUpdate) (store.Profile, error)
	AdminByEmail(ctx context.Context, email string) (store.Admin, error)
}

// LoginResult is the outcome of a credential check. When NeedsVerification
// is set the credentials were correct but the email is unverified; the
// caller should resume the verification flow with Email instead of
// treating it as a failure.
type LoginResult struct {
	Token             string
	User              store.Profile
	NeedsVerification bool
	Email             string
}

// AdminLoginResult carries the issued admin token and identity.
type AdminLoginResult struct {
	Token   string
	AdminID int64
	Email   string
}

// Service implements registration, email verification, and login for both
// credential spaces.
type Service struct {
	store  Store
	tokens *auth.TokenManager
	mailer mail.Mailer
}

// New wires an auth Service.
func New(store Store, tokens *auth.TokenManager, mailer mail.Mailer) *Service {
	return &Service{store: store, tokens: tokens, mailer: mailer}
}

// Register creates an unverified account and emails a 6-digit code valid
// for 10 minutes.
func (s *Service) Register(ctx context.Context, email, username, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}

	if err := s.store.CreateUser(ctx, email, username, hash, code, time.Now().Add(codeTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// VerifyEmail checks the code and marks the account verified.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	return s.store.VerifyEmail(ctx, email, code, time.Now())
}

// ResendCode issues a fresh verification code for an unverified account.
func (s *Service) ResendCode(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}
	if err := s.store.ResetVerification(ctx, email, code, time.Now().Add(codeTTL)); err != nil {
		return err
	}
	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// Login validates user credentials. Correct credentials on an unverified
// account yield a NeedsVerification result rather than an error; otherwise
// a signed 24-hour session token and the profile are returned.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	creds, err := s.store.CredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			auth.BurnPassword(password)
		}
		return LoginResult{}, err
	}

	if !auth.CheckPassword(creds.PasswordHash, password) {
		return LoginResult{}, auth.ErrInvalidCredentials
	}

	if !creds.Verified {
		return LoginResult{NeedsVerification: true, Email: creds.Email}, nil
	}

	token, err := s.tokens.IssueUserToken(creds.ID, creds.Email, creds.Username)
	if err != nil {
		return LoginResult{}, err
	}

	profile, err := s.store.ProfileByEmail(ctx, creds.Email)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: profile}, nil
}

// AdminLogin validates admin credentials and issues an admin-scoped token.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (AdminLoginResult, error) {
	admin, err := s.store.AdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAdminNotFound) {
			auth.BurnPassword(password)
		}
		return AdminLoginResult{}, err
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		return AdminLoginResult{}, auth.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAdminToken(admin.ID, admin.Email)
	if err != nil {
		return AdminLoginResult{}, err
	}

	return AdminLoginResult{Token: token, AdminID: admin.ID, Email: admin.Email}, nil
}

// Profile returns the profile for the authenticated user's email.
func (s *Service) Profile(ctx context.Context, email string) (store.Profile, error) {
	return s.store.ProfileByEmail(ctx, email)
}

// UpdateProfile applies a partial profile update and returns the merged
// profile.
func (s *Service) UpdateProfile(ctx context.Context, email string, update store.ProfileUpdate) (store.Profile, error) {
	return s.store.UpdateProfile(ctx, email, update)
}

// generateCode produces a random 6-digit numeric verification code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
