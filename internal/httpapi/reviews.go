package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"tunecrate/internal/app/reviews"
	"tunecrate/internal/store"
)

type reviewRequest struct {
	TrackID int64  `json:"trackId"`
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

type commentRequest struct {
	TrackID int64  `json:"trackId"`
	Comment string `json:"comment"`
}

type likeRequest struct {
	SongID int64 `json:"songId"`
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.TrackID == 0 || req.Rating == nil {
		writeError(w, http.StatusBadRequest, "trackId and rating are required")
		return
	}

	err := s.reviews.SubmitReview(r.Context(), claims.Email, req.TrackID, *req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidRating):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "No user found with that email")
		case errors.Is(err, store.ErrSongNotFound):
			writeError(w, http.StatusNotFound, "Song not found")
		default:
			s.logger.Error().Err(err).Int64("track_id", req.TrackID).Msg("submit review failed")
			writeError(w, http.StatusInternalServerError, "Failed to add review")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Review added successfully"})
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.TrackID == 0 {
		writeError(w, http.StatusBadRequest, "trackId and comment are required")
		return
	}

	err := s.reviews.AddComment(r.Context(), claims.Email, req.TrackID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrEmptyComment):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "No user found with that email")
		case errors.Is(err, store.ErrSongNotFound):
			writeError(w, http.StatusNotFound, "Song not found")
		default:
			s.logger.Error().Err(err).Int64("track_id", req.TrackID).Msg("add comment failed")
			writeError(w, http.StatusInternalServerError, "Failed to add comment")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Comment added successfully"})
}

func (s *Server) handleLikeSong(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.SongID == 0 {
		writeError(w, http.StatusBadRequest, "songId is required")
		return
	}

	if err := s.likes.Like(r.Context(), claims.Email, req.SongID); err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "No user found with that email")
		case errors.Is(err, store.ErrSongNotFound):
			writeError(w, http.StatusNotFound, "Song not found")
		default:
			s.logger.Error().Err(err).Int64("track_id", req.SongID).Msg("like song failed")
			writeError(w, http.StatusInternalServerError, "Failed to add to liked list")
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Song added to liked list successfully"})
}

func (s *Server) handleLikedSongs(w http.ResponseWriter, r *http.Request) {
	claims, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	liked, err := s.likes.ListLiked(r.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// The account vanished under a valid token; an empty list
			// mirrors how the client treats it.
			writeJSON(w, http.StatusOK, []store.LikedSong{})
			return
		}
		s.logger.Error().Err(err).Str("email", claims.Email).Msg("list liked songs failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch liked songs")
		return
	}
	if liked == nil {
		liked = []store.LikedSong{}
	}

	writeJSON(w, http.StatusOK, liked)
}
