package httpapi

import (
	"encoding/json"
	"net/http"

	"discograph/internal/store"
)

type albumRequest struct {
	Name          string     `json:"name"`
	DatePublished store.Date `json:"date_published"`
}

func (r albumRequest) album() store.Album {
	return store.Album{
		Name:          r.Name,
		DatePublished: r.DatePublished,
	}
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	artistID, err := pathID(r, "artistId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	id, err := s.albums.Create(r.Context(), artistID, req.album())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid album id"})
		return
	}

	album, err := s.albums.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid album id"})
		return
	}

	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	if err := s.albums.Update(r.Context(), id, req.album()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, idResponse{ID: id})
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid album id"})
		return
	}

	if err := s.albums.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := s.albums.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if albums == nil {
		albums = []store.Album{}
	}
	writeJSON(w, http.StatusOK, albums)
}

func (s *Server) handleGetAlbumArtists(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid album id"})
		return
	}

	artists, err := s.albums.Artists(r.Context(), albumID)
	if err != nil {
		writeError(w, err)
		return
	}
	if artists == nil {
		artists = []store.Artist{}
	}
	writeJSON(w, http.StatusOK, artists)
}

func (s *Server) handleAddAlbumArtists(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid album id"})
		return
	}

	var artistIDs []int64
	if err := json.NewDecoder(r.Body).Decode(&artistIDs); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	if err := s.albums.AddArtists(r.Context(), albumID, artistIDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: albumID})
}

func (s *Server) handleRemoveAlbumArtists(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid album id"})
		return
	}

	var artistIDs []int64
	if err := json.NewDecoder(r.Body).Decode(&artistIDs); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	if err := s.albums.RemoveArtists(r.Context(), albumID, artistIDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: albumID})
}
