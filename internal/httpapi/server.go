package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	appauth "tunecrate/internal/app/auth"
	"tunecrate/internal/auth"
	"tunecrate/internal/store"
)

// AuthService captures the account workflows needed by the HTTP handlers.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (appauth.LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (appauth.AdminLoginResult, error)
	Profile(ctx context.Context, email string) (store.Profile, error)
	UpdateProfile(ctx context.Context, email string, update store.ProfileUpdate) (store.Profile, error)
}

// SongService exposes catalog browsing workflows.
type SongService interface {
	List(ctx context.Context, offset, limit int) ([]store.Song, error)
	Search(ctx context.Context, query string) ([]store.Song, error)
	Get(ctx context.Context, trackID int64) (store.Song, error)
	Details(ctx context.Context, trackID int64) (store.SongDetails, error)
}

// ReviewService exposes rating and comment workflows.
type ReviewService interface {
	SubmitReview(ctx context.Context, email string, trackID int64, rating int, comment string) error
	AddComment(ctx context.Context, email string, trackID int64, comment string) error
}

// LikeService exposes the liked-songs workflows.
type LikeService interface {
	Like(ctx context.Context, email string, trackID int64) error
	ListLiked(ctx context.Context, email string) ([]store.LikedSong, error)
}

// AdminService exposes the privileged catalog workflows.
type AdminService interface {
	AddSong(ctx context.Context, song store.Song) (int64, error)
	UpdateSong(ctx context.Context, trackID int64, update store.SongUpdate) error
	DeleteSong(ctx context.Context, trackID int64) error
	MostCommonGenre(ctx context.Context, bucket int) (string, error)
	ListUsers(ctx context.Context) ([]store.UserSummary, error)
}

// TokenVerifier validates session tokens for both credential spaces.
type TokenVerifier interface {
	VerifyUserToken(token string) (*auth.UserClaims, error)
	VerifyAdminToken(token string) (*auth.AdminClaims, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	auth      AuthService
	songs     SongService
	reviews   ReviewService
	likes     LikeService
	admin     AdminService
	verifier  TokenVerifier
	uploadDir string
	logger    zerolog.Logger
}

// New configures a Server with the given services.
func New(
	authSvc AuthService,
	songSvc SongService,
	reviewSvc ReviewService,
	likeSvc LikeService,
	adminSvc AdminService,
	verifier TokenVerifier,
	uploadDir string,
	logger zerolog.Logger,
) *Server {
	return &Server{
		auth:      authSvc,
		songs:     songSvc,
		reviews:   reviewSvc,
		likes:     likeSvc,
		admin:     adminSvc,
		verifier:  verifier,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", handleHealth).Methods(http.MethodGet)

	// Account routes
	r.HandleFunc("/api/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/verify-email", s.handleVerifyEmail).Methods(http.MethodPost)
	r.HandleFunc("/api/resend-code", s.handleResendCode).Methods(http.MethodPost)
	r.HandleFunc("/api/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/profile", s.requireUser(s.handleProfile)).Methods(http.MethodGet)
	r.HandleFunc("/api/update", s.requireUser(s.handleUpdateProfile)).Methods(http.MethodPost)

	// Catalog routes. The literal /api/songs/... paths must come before the
	// numeric {songId} route.
	r.HandleFunc("/api/songs", s.handleListSongs).Methods(http.MethodGet)
	r.HandleFunc("/api/songs/search/{query}", s.handleSearchSongs).Methods(http.MethodGet)
	r.HandleFunc("/api/songs/details/{trackId:[0-9]+}", s.handleSongDetails).Methods(http.MethodGet)

	// Review and like routes
	r.HandleFunc("/api/songs/review", s.requireUser(s.handleSubmitReview)).Methods(http.MethodPost)
	r.HandleFunc("/api/songs/comment", s.requireUser(s.handleAddComment)).Methods(http.MethodPost)
	r.HandleFunc("/api/songs/like", s.requireUser(s.handleLikeSong)).Methods(http.MethodPost)
	r.HandleFunc("/api/songs/liked", s.requireUser(s.handleLikedSongs)).Methods(http.MethodPost)

	// Admin routes
	r.HandleFunc("/api/admin/login", s.handleAdminLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/verify", s.requireAdmin(s.handleAdminVerify)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/users", s.requireAdmin(s.handleListUsers)).Methods(http.MethodGet)
	r.HandleFunc("/api/mostCommonGenre/{bucket}", s.requireAdmin(s.handleMostCommonGenre)).Methods(http.MethodGet)
	r.HandleFunc("/api/songs/add", s.requireAdmin(s.handleAddSong)).Methods(http.MethodPost)
	r.HandleFunc("/api/songs/update/{songId:[0-9]+}", s.requireAdmin(s.handleUpdateSong)).Methods(http.MethodPut)
	r.HandleFunc("/api/songs/delete/{songId:[0-9]+}", s.requireAdmin(s.handleDeleteSong)).Methods(http.MethodDelete)

	r.HandleFunc("/api/songs/{songId:[0-9]+}", s.handleGetSong).Methods(http.MethodGet)

	// Uploaded avatars
	if s.uploadDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))),
		)
	}

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
