package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Song models a single track. Every song belongs to exactly one album
// and is removed with it.
type Song struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LengthSecs int    `json:"length_secs"`
	AlbumID    int64  `json:"album_id"`
}

// CreateSong validates and inserts a new song, returning its id. The
// referenced album must exist at the moment of creation.
func (s *Store) CreateSong(ctx context.Context, song Song) (int64, error) {
	if err := validateSong(song); err != nil {
		return 0, err
	}
	if err := s.albumExists(ctx, song.AlbumID); err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			return 0, fmt.Errorf("%w: album %d does not exist", ErrInvalidSong, song.AlbumID)
		}
		return 0, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (name, length_secs, album_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, strings.TrimSpace(song.Name), song.LengthSecs, song.AlbumID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert song: %w", err)
	}
	return id, nil
}

// SongByID returns a single song by its identifier.
func (s *Store) SongByID(ctx context.Context, id int64) (Song, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, length_secs, album_id
		FROM songs
		WHERE id = $1
	`, id)

	song, err := scanSongRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, err
	}
	return song, nil
}

// UpdateSong replaces all fields of the song at id without checking
// that the row exists first.
func (s *Store) UpdateSong(ctx context.Context, id int64, song Song) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET name = $1, length_secs = $2, album_id = $3
		WHERE id = $4
	`, strings.TrimSpace(song.Name), song.LengthSecs, song.AlbumID, id); err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	return nil
}

// DeleteSong removes a single song by id.
func (s *Store) DeleteSong(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM songs
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete song rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// ListSongs returns every song in the catalog.
func (s *Store) ListSongs(ctx context.Context) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, length_secs, album_id
		FROM songs
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select songs: %w", err)
	}
	defer rows.Close()

	songs, err := scanSongRows(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// SongsByAlbum lists the songs on an album. An unknown album id yields
// an empty list, not an error.
func (s *Store) SongsByAlbum(ctx context.Context, albumID int64) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, length_secs, album_id
		FROM songs
		WHERE album_id = $1
		ORDER BY id ASC
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("select album songs: %w", err)
	}
	defer rows.Close()

	songs, err := scanSongRows(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album songs: %w", err)
	}
	return songs, nil
}

func validateSong(song Song) error {
	switch {
	case strings.TrimSpace(song.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidSong)
	case song.LengthSecs <= 0:
		return fmt.Errorf("%w: length must be positive", ErrInvalidSong)
	}
	return nil
}

func scanSongRow(scanner rowScanner) (Song, error) {
	var song Song
	if err := scanner.Scan(&song.ID, &song.Name, &song.LengthSecs, &song.AlbumID); err != nil {
		return Song{}, fmt.Errorf("scan song: %w", err)
	}
	return song, nil
}

func scanSongRows(rows *sql.Rows) ([]Song, error) {
	var songs []Song
	for rows.Next() {
		song, err := scanSongRow(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}
