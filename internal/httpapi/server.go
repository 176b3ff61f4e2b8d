package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"discograph/internal/store"
)

// SongService coordinates track-level operations.
type SongService interface {
	Create(ctx context.Context, song store.Song) (int64, error)
	Get(ctx context.Context, id int64) (store.Song, error)
	Update(ctx context.Context, id int64, song store.Song) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]store.Song, error)
	ListByAlbum(ctx context.Context, albumID int64) ([]store.Song, error)
}

// AlbumService exposes album workflows, including artist links.
type AlbumService interface {
	Create(ctx context.Context, artistID int64, album store.Album) (int64, error)
	Get(ctx context.Context, id int64) (store.Album, error)
	Update(ctx context.Context, id int64, album store.Album) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]store.Album, error)
	Artists(ctx context.Context, albumID int64) ([]store.Artist, error)
	AddArtists(ctx context.Context, albumID int64, artistIDs []int64) error
	RemoveArtists(ctx context.Context, albumID int64, artistIDs []int64) error
}

// ArtistService coordinates artist catalog workflows.
type ArtistService interface {
	Create(ctx context.Context, artist store.Artist) (int64, error)
	Get(ctx context.Context, id int64) (store.Artist, error)
	Update(ctx context.Context, id int64, artist store.Artist) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]store.Artist, error)
	Albums(ctx context.Context, artistID int64) ([]store.Album, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	songs   SongService
	albums  AlbumService
	artists ArtistService
}

// New configures a Server with the given services.
func New(songs SongService, albums AlbumService, artists ArtistService) *Server {
	return &Server{
		songs:   songs,
		albums:  albums,
		artists: artists,
	}
}

// Routes exposes the HTTP handlers for the catalog API.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	// Song routes
	r.HandleFunc("/song", s.handleCreateSong).Methods(http.MethodPost)
	r.HandleFunc("/song/all", s.handleListSongs).Methods(http.MethodGet)
	r.HandleFunc("/song/{id:[0-9]+}", s.handleGetSong).Methods(http.MethodGet)
	r.HandleFunc("/song/{id:[0-9]+}", s.handleUpdateSong).Methods(http.MethodPut)
	r.HandleFunc("/song/{id:[0-9]+}", s.handleDeleteSong).Methods(http.MethodDelete)

	// Album routes
	r.HandleFunc("/album/all", s.handleListAlbums).Methods(http.MethodGet)
	r.HandleFunc("/album/{id:[0-9]+}", s.handleGetAlbum).Methods(http.MethodGet)
	r.HandleFunc("/album/{id:[0-9]+}", s.handleUpdateAlbum).Methods(http.MethodPut)
	r.HandleFunc("/album/{id:[0-9]+}", s.handleDeleteAlbum).Methods(http.MethodDelete)
	r.HandleFunc("/album/{id:[0-9]+}/artist", s.handleAddAlbumArtists).Methods(http.MethodPost)
	r.HandleFunc("/album/{id:[0-9]+}/artist", s.handleGetAlbumArtists).Methods(http.MethodGet)
	r.HandleFunc("/album/{id:[0-9]+}/artist", s.handleRemoveAlbumArtists).Methods(http.MethodDelete)
	r.HandleFunc("/album/{id:[0-9]+}/songs", s.handleGetAlbumSongs).Methods(http.MethodGet)

	// Artist routes
	r.HandleFunc("/artist", s.handleCreateArtist).Methods(http.MethodPost)
	r.HandleFunc("/artist/all", s.handleListArtists).Methods(http.MethodGet)
	r.HandleFunc("/artist/{id:[0-9]+}", s.handleGetArtist).Methods(http.MethodGet)
	r.HandleFunc("/artist/{id:[0-9]+}", s.handleUpdateArtist).Methods(http.MethodPut)
	r.HandleFunc("/artist/{id:[0-9]+}", s.handleDeleteArtist).Methods(http.MethodDelete)
	r.HandleFunc("/artist/{id:[0-9]+}/albums", s.handleGetArtistAlbums).Methods(http.MethodGet)
	r.HandleFunc("/artist/{artistId:[0-9]+}/album", s.handleCreateAlbum).Methods(http.MethodPost)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// statusForError maps store sentinel errors onto HTTP status codes:
// validation failures are 400, missing records 404, everything else is
// a storage failure reported as 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidSong),
		errors.Is(err, store.ErrInvalidAlbum),
		errors.Is(err, store.ErrInvalidArtist):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, store.ErrAlbumNotFound),
		errors.Is(err, store.ErrArtistNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
