package httpapi

import (
	"encoding/json"
	"net/http"

	"discograph/internal/store"
)

type artistRequest struct {
	Name       string     `json:"name"`
	DateFormed store.Date `json:"date_formed"`
	Genre      string     `json:"genre"`
}

func (r artistRequest) artist() (store.Artist, error) {
	genre, err := store.ParseGenre(r.Genre)
	if err != nil {
		return store.Artist{}, err
	}
	return store.Artist{
		Name:       r.Name,
		DateFormed: r.DateFormed,
		Genre:      genre,
	}, nil
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	artist, err := req.artist()
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.artists.Create(r.Context(), artist)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	var req artistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	artist, err := req.artist()
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.artists.Update(r.Context(), id, artist); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, idResponse{ID: id})
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	if err := s.artists.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if artists == nil {
		artists = []store.Artist{}
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleGetArtistAlbums(w http.ResponseWriter, r *http.Request) {
	artistID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	albums, err := s.artists.Albums(r.Context(), artistID)
	if err != nil {
		writeError(w, err)
		return
	}
	if albums == nil {
		albums = []store.Album{}
	}
	writeJSON(w, http.StatusOK, albums)
}
