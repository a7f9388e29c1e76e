package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tunecrate/internal/app/songs"
	"tunecrate/internal/store"
)

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	offset := 0
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset parameter")
			return
		}
		offset = parsed
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	list, err := s.songs.List(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list songs failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch songs")
		return
	}
	if list == nil {
		list = []store.Song{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSearchSongs(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]

	results, err := s.songs.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, songs.ErrQueryTooShort) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("query", query).Msg("song search failed")
		writeError(w, http.StatusInternalServerError, "Failed to search songs")
		return
	}
	if results == nil {
		results = []store.Song{}
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleSongDetails(w http.ResponseWriter, r *http.Request) {
	trackID, err := strconv.ParseInt(mux.Vars(r)["trackId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	details, err := s.songs.Details(r.Context(), trackID)
	if err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			writeError(w, http.StatusNotFound, "Song not found")
			return
		}
		s.logger.Error().Err(err).Int64("track_id", trackID).Msg("song details failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch song details")
		return
	}
	if details.Comments == nil {
		details.Comments = []store.Comment{}
	}

	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	trackID, err := strconv.ParseInt(mux.Vars(r)["songId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid song id")
		return
	}

	song, err := s.songs.Get(r.Context(), trackID)
	if err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			writeError(w, http.StatusNotFound, "Song not found")
			return
		}
		s.logger.Error().Err(err).Int64("track_id", trackID).Msg("song lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to get song by ID")
		return
	}

	writeJSON(w, http.StatusOK, song)
}
