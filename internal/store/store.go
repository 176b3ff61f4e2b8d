package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSong indicates validation failure for song data.
	ErrInvalidSong = errors.New("invalid song")
	// ErrInvalidAlbum indicates validation failure for album data.
	ErrInvalidAlbum = errors.New("invalid album")
	// ErrInvalidArtist indicates validation failure for artist data.
	ErrInvalidArtist = errors.New("invalid artist")

	// ErrSongNotFound signals a missing song record.
	ErrSongNotFound = errors.New("song not found")
	// ErrAlbumNotFound signals a missing album record.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrArtistNotFound signals a missing artist record.
	ErrArtistNotFound = errors.New("artist not found")
)

// Store provides catalog persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// placeholders renders "$start, $start+1, ..., $start+n-1".
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
