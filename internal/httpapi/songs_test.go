package httpapi

import (
	"net/http"
	"strings"
	"testing"

	"tunecrate/internal/app/songs"
	"tunecrate/internal/store"
)

func TestListSongsEmptyCatalog(t *testing.T) {
	srv, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/songs", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", rec.Body.String())
	}
}

func TestListSongsInvalidOffset(t *testing.T) {
	srv, _ := newTestServer()

	for _, query := range []string{"offset=abc", "offset=-1", "limit=xyz"} {
		rec := doRequest(t, srv, http.MethodGet, "/api/songs?"+query, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestSearchSongsTooShort(t *testing.T) {
	srv, st := newTestServer()
	st.songs.searchErr = songs.ErrQueryTooShort

	rec := doRequest(t, srv, http.MethodGet, "/api/songs/search/a", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody[errorResponse](t, rec)
	if resp.Error != songs.ErrQueryTooShort.Error() {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestSearchSongsResults(t *testing.T) {
	srv, st := newTestServer()
	st.songs.results = []store.Song{
		{TrackID: 2, TrackName: "Teardrop", ArtistName: "Massive Attack"},
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/songs/search/tear", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	results := decodeBody[[]store.Song](t, rec)
	if len(results) != 1 || results[0].TrackName != "Teardrop" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSongDetailsNotFound(t *testing.T) {
	srv, st := newTestServer()
	st.songs.detailsErr = store.ErrSongNotFound

	rec := doRequest(t, srv, http.MethodGet, "/api/songs/details/99", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSongDetailsEmptyComments(t *testing.T) {
	srv, st := newTestServer()
	st.songs.details = store.SongDetails{
		Song: store.Song{TrackID: 7, TrackName: "Kerala", ArtistName: "Bonobo"},
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/songs/details/7", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"comments":[]`) {
		t.Fatalf("expected empty comments array, got %q", rec.Body.String())
	}
}

func TestGetSongByID(t *testing.T) {
	srv, st := newTestServer()
	st.songs.song = store.Song{TrackID: 7, TrackName: "Kerala", ArtistName: "Bonobo"}

	rec := doRequest(t, srv, http.MethodGet, "/api/songs/7", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	song := decodeBody[store.Song](t, rec)
	if song.TrackID != 7 || song.TrackName != "Kerala" {
		t.Fatalf("unexpected song: %+v", song)
	}
}

func TestGetSongNonNumericID(t *testing.T) {
	srv, _ := newTestServer()

	// The numeric route constraint leaves nothing to match.
	rec := doRequest(t, srv, http.MethodGet, "/api/songs/abc", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
