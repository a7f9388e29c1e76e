package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tunecrate/internal/auth"
	"tunecrate/internal/store"
)

const maxUploadBytes = 50 << 20

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendCodeRequest struct {
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    store.Profile `json:"user"`
}

type needsVerificationResponse struct {
	NeedsVerification bool   `json:"needsVerification"`
	Email             string `json:"email"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email, username, and password are required")
		return
	}

	if err := s.auth.Register(r.Context(), req.Email, req.Username, req.Password); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("registration failed")
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "User registered successfully. Please check your email for verification.",
	})
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Email and verification code are required")
		return
	}

	if err := s.auth.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		switch {
		case errors.Is(err, store.ErrNotPendingVerification),
			errors.Is(err, store.ErrCodeExpired),
			errors.Is(err, store.ErrCodeMismatch):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error().Err(err).Str("email", req.Email).Msg("email verification failed")
			writeError(w, http.StatusInternalServerError, "Failed to verify email")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Email verified successfully"})
}

func (s *Server) handleResendCode(w http.ResponseWriter, r *http.Request) {
	var req resendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := s.auth.ResendCode(r.Context(), req.Email); err != nil {
		if errors.Is(err, store.ErrNotPendingVerification) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("resend code failed")
		writeError(w, http.StatusInternalServerError, "Failed to resend verification code")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Verification code sent"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			writeError(w, http.StatusUnauthorized, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			s.logger.Error().Err(err).Str("email", req.Email).Msg("login failed")
			writeError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	if result.NeedsVerification {
		writeJSON(w, http.StatusForbidden, needsVerificationResponse{
			NeedsVerification: true,
			Email:             result.Email,
		})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := s.auth.Profile(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error().Err(err).Str("email", claims.Email).Msg("profile lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type updateProfileResponse struct {
	Message       string        `json:"message"`
	UpdatedFields store.Profile `json:"updatedFields"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	var update store.ProfileUpdate
	if values, present := r.MultipartForm.Value["favoriteGenre"]; present && len(values) > 0 {
		update.FavoriteGenre = &values[0]
	}
	if values, present := r.MultipartForm.Value["favoriteArtist"]; present && len(values) > 0 {
		update.FavoriteArtist = &values[0]
	}
	if values, present := r.MultipartForm.Value["bio"]; present && len(values) > 0 {
		update.Bio = &values[0]
	}

	if file, header, err := r.FormFile("avatar"); err == nil {
		defer file.Close()
		filename, err := s.saveAvatar(file, header)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		update.Avatar = filename
	}

	profile, err := s.auth.UpdateProfile(r.Context(), claims.Email, update)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		s.logger.Error().Err(err).Str("email", claims.Email).Msg("profile update failed")
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, updateProfileResponse{
		Message:       "Profile updated successfully",
		UpdatedFields: profile,
	})
}

// saveAvatar stores an uploaded image under the upload directory using a
// timestamped unique name and returns that name.
func (s *Server) saveAvatar(file multipart.File, header *multipart.FileHeader) (string, error) {
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return "", errors.New("only image files are allowed for the avatar")
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	return filename, nil
}
