package httpapi

import (
	"encoding/json"
	"net/http"

	"discograph/internal/store"
)

type songRequest struct {
	Name       string `json:"name"`
	LengthSecs int    `json:"length_secs"`
	AlbumID    int64  `json:"album_id"`
}

func (r songRequest) song() store.Song {
	return store.Song{
		Name:       r.Name,
		LengthSecs: r.LengthSecs,
		AlbumID:    r.AlbumID,
	}
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	id, err := s.songs.Create(r.Context(), req.song())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return
	}

	song, err := s.songs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return
	}

	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	if err := s.songs.Update(r.Context(), id, req.song()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, idResponse{ID: id})
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return
	}

	if err := s.songs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if songs == nil {
		songs = []store.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleGetAlbumSongs(w http.ResponseWriter, r *http.Request) {
	albumID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid album id"})
		return
	}

	songs, err := s.songs.ListByAlbum(r.Context(), albumID)
	if err != nil {
		writeError(w, err)
		return
	}
	if songs == nil {
		songs = []store.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}
