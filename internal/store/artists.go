package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Genre is the fixed set of artist genres. The zero value means the
// genre was never specified.
type Genre string

const (
	GenreUnspecified Genre = ""
	GenreMetal       Genre = "metal"
	GenreClassical   Genre = "classical"
	GenreRock        Genre = "rock"
	GenrePop         Genre = "pop"
	GenreJazz        Genre = "jazz"
)

// ParseGenre maps a raw string onto a Genre, case-insensitively.
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return GenreUnspecified, fmt.Errorf("%w: unknown genre %q", ErrInvalidArtist, s)
	}
	return g, nil
}

// Valid reports whether g is a known genre or unspecified.
func (g Genre) Valid() bool {
	switch g {
	case GenreUnspecified, GenreMetal, GenreClassical, GenreRock, GenrePop, GenreJazz:
		return true
	}
	return false
}

// Artist models a musical act in the catalog.
type Artist struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	DateFormed Date   `json:"date_formed"`
	Genre      Genre  `json:"genre,omitempty"`
}

// CreateArtist validates and inserts a new artist, returning its id.
func (s *Store) CreateArtist(ctx context.Context, artist Artist) (int64, error) {
	if err := validateArtist(artist); err != nil {
		return 0, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name, date_formed, genre)
		VALUES ($1, $2, $3)
		RETURNING id
	`, strings.TrimSpace(artist.Name), artist.DateFormed, genreArg(artist.Genre)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert artist: %w", err)
	}
	return id, nil
}

// ArtistByID returns a single artist by its identifier.
func (s *Store) ArtistByID(ctx context.Context, id int64) (Artist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, date_formed, genre
		FROM artists
		WHERE id = $1
	`, id)

	artist, err := scanArtistRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artist{}, ErrArtistNotFound
		}
		return Artist{}, err
	}
	return artist, nil
}

// UpdateArtist replaces all fields of the artist at id. It does not
// check that the row exists first; updating an unknown id is a no-op.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist Artist) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE artists
		SET name = $1, date_formed = $2, genre = $3
		WHERE id = $4
	`, strings.TrimSpace(artist.Name), artist.DateFormed, genreArg(artist.Genre), id); err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	return nil
}

// DeleteArtist removes an artist and sweeps up albums left without any
// artist link. The link snapshot is taken before the artist row is
// deleted; the sweep runs once per snapshotted album id.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	albumIDs, err := linkedAlbumIDs(ctx, tx, id)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM artists
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete artist rows affected: %w", err)
	}
	if affected == 0 {
		return ErrArtistNotFound
	}

	// The artist's own links are gone via FK cascade; albums with no
	// links left are orphans and must not persist.
	for _, albumID := range albumIDs {
		var remaining int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM album_artists
			WHERE album_id = $1
		`, albumID).Scan(&remaining); err != nil {
			return fmt.Errorf("count album links: %w", err)
		}
		if remaining > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM albums
			WHERE id = $1
		`, albumID); err != nil {
			return fmt.Errorf("delete orphan album: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// ListArtists returns every artist in the catalog.
func (s *Store) ListArtists(ctx context.Context) ([]Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, date_formed, genre
		FROM artists
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	artists, err := scanArtistRows(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// ArtistAlbums lists the albums linked to an artist. It fails with
// ErrArtistNotFound when the artist does not exist.
func (s *Store) ArtistAlbums(ctx context.Context, artistID int64) ([]Album, error) {
	if err := s.artistExists(ctx, artistID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.date_published
		FROM albums a
		JOIN album_artists l ON l.album_id = a.id
		WHERE l.artist_id = $1
		ORDER BY a.id ASC
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("select artist albums: %w", err)
	}
	defer rows.Close()

	albums, err := scanAlbumRows(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist albums: %w", err)
	}
	return albums, nil
}

func (s *Store) artistExists(ctx context.Context, id int64) error {
	var found int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM artists
		WHERE id = $1
	`, id).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return fmt.Errorf("lookup artist: %w", err)
	}
	return nil
}

func linkedAlbumIDs(ctx context.Context, tx *sql.Tx, artistID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT album_id
		FROM album_artists
		WHERE artist_id = $1
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("select artist links: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan artist link: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist links: %w", err)
	}
	return ids, nil
}

func validateArtist(artist Artist) error {
	switch {
	case strings.TrimSpace(artist.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidArtist)
	case artist.DateFormed.After(Today()):
		return fmt.Errorf("%w: date formed is in the future", ErrInvalidArtist)
	case !artist.Genre.Valid():
		return fmt.Errorf("%w: unknown genre %q", ErrInvalidArtist, artist.Genre)
	}
	return nil
}

func genreArg(g Genre) any {
	if g == GenreUnspecified {
		return nil
	}
	return string(g)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtistRow(scanner rowScanner) (Artist, error) {
	var (
		a     Artist
		genre sql.NullString
	)
	if err := scanner.Scan(&a.ID, &a.Name, &a.DateFormed, &genre); err != nil {
		return Artist{}, fmt.Errorf("scan artist: %w", err)
	}
	if genre.Valid {
		a.Genre = Genre(genre.String)
	}
	return a, nil
}

func scanArtistRows(rows *sql.Rows) ([]Artist, error) {
	var artists []Artist
	for rows.Next() {
		a, err := scanArtistRow(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, nil
}
