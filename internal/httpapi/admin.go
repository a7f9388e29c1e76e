package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tunecrate/internal/app/admin"
	"tunecrate/internal/auth"
	"tunecrate/internal/store"
)

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminIdentity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type adminLoginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Admin   adminIdentity `json:"admin"`
}

type addSongRequest struct {
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	AlbumName  string `json:"albumName"`
	AlbumImage string `json:"albumImage"`
	Rating     int    `json:"rating"`
	Genres     string `json:"genres"`
	AudioURL   string `json:"audioUrl"`
	Year       int    `json:"year"`
}

type updateSongRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
	Year   int    `json:"year"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := s.auth.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAdminNotFound):
			writeError(w, http.StatusNotFound, "Admin not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid password")
		default:
			s.logger.Error().Err(err).Str("email", req.Email).Msg("admin login failed")
			writeError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	writeJSON(w, http.StatusOK, adminLoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		Admin:   adminIdentity{ID: result.AdminID, Email: result.Email},
	})
}

func (s *Server) handleAdminVerify(w http.ResponseWriter, r *http.Request) {
	claims, ok := AdminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Admin authentication required")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string        `json:"message"`
		Admin   adminIdentity `json:"admin"`
	}{
		Message: "Valid token",
		Admin:   adminIdentity{ID: claims.AdminID, Email: claims.Email},
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.admin.ListUsers(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list users failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	if users == nil {
		users = []store.UserSummary{}
	}

	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	var req addSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	trackID, err := s.admin.AddSong(r.Context(), store.Song{
		TrackName:   req.TrackName,
		ArtistName:  req.ArtistName,
		AlbumName:   req.AlbumName,
		AlbumImage:  req.AlbumImage,
		Genres:      req.Genres,
		ReleaseYear: req.Year,
		AudioURL:    req.AudioURL,
		Rating:      req.Rating,
	})
	if err != nil {
		if errors.Is(err, admin.ErrInvalidSong) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Msg("add song failed")
		writeError(w, http.StatusInternalServerError, "Failed to add song")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		TrackID int64  `json:"trackId"`
	}{Message: "Song added successfully", TrackID: trackID})
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	trackID, err := strconv.ParseInt(mux.Vars(r)["songId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	var req updateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Title == "" || req.Artist == "" || req.Album == "" || req.Genre == "" || req.Year == 0 {
		writeError(w, http.StatusBadRequest, "Missing required field")
		return
	}

	err = s.admin.UpdateSong(r.Context(), trackID, store.SongUpdate{
		TrackName:   req.Title,
		ArtistName:  req.Artist,
		AlbumName:   req.Album,
		Genres:      req.Genre,
		ReleaseYear: req.Year,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSongNotFound):
			writeError(w, http.StatusNotFound, "Song not found")
		case errors.Is(err, admin.ErrInvalidSong):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error().Err(err).Int64("track_id", trackID).Msg("update song failed")
			writeError(w, http.StatusInternalServerError, "Failed to update song")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Song updated successfully"})
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	trackID, err := strconv.ParseInt(mux.Vars(r)["songId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	if err := s.admin.DeleteSong(r.Context(), trackID); err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			writeError(w, http.StatusNotFound, "Song not found")
			return
		}
		s.logger.Error().Err(err).Int64("track_id", trackID).Msg("delete song failed")
		writeError(w, http.StatusInternalServerError, "Failed to delete song")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Song deleted successfully"})
}

func (s *Server) handleMostCommonGenre(w http.ResponseWriter, r *http.Request) {
	bucket, err := strconv.Atoi(mux.Vars(r)["bucket"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rating range")
		return
	}

	genre, err := s.admin.MostCommonGenre(r.Context(), bucket)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidBucket) {
			writeError(w, http.StatusBadRequest, "Invalid rating range")
			return
		}
		s.logger.Error().Err(err).Int("bucket", bucket).Msg("most common genre failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch most common genre")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		MostCommonGenre string `json:"most_common_genre"`
	}{MostCommonGenre: genre})
}
