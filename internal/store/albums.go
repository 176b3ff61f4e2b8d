package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Album models a published record. Every album is linked to at least
// one artist at creation time.
type Album struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DatePublished Date   `json:"date_published"`
}

// CreateAlbum validates and inserts a new album owned by the given
// artist. The album row and its first artist link are written in one
// transaction so an album can never be created without an artist.
func (s *Store) CreateAlbum(ctx context.Context, artistID int64, album Album) (int64, error) {
	if err := validateAlbum(album); err != nil {
		return 0, err
	}
	if err := s.artistExists(ctx, artistID); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO albums (name, date_published)
		VALUES ($1, $2)
		RETURNING id
	`, strings.TrimSpace(album.Name), album.DatePublished).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert album: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO album_artists (album_id, artist_id)
		VALUES ($1, $2)
	`, id, artistID); err != nil {
		return 0, fmt.Errorf("insert album link: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return id, nil
}

// AlbumByID returns a single album by its identifier.
func (s *Store) AlbumByID(ctx context.Context, id int64) (Album, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, date_published
		FROM albums
		WHERE id = $1
	`, id)

	album, err := scanAlbumRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Album{}, ErrAlbumNotFound
		}
		return Album{}, err
	}
	return album, nil
}

// UpdateAlbum replaces all fields of the album at id without checking
// that the row exists first.
func (s *Store) UpdateAlbum(ctx context.Context, id int64, album Album) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET name = $1, date_published = $2
		WHERE id = $3
	`, strings.TrimSpace(album.Name), album.DatePublished, id); err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	return nil
}

// DeleteAlbum removes an album. Dependent songs and artist links are
// removed by the storage-level cascade; artists are never deleted as a
// side effect.
func (s *Store) DeleteAlbum(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM albums
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete album rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// ListAlbums returns every album in the catalog.
func (s *Store) ListAlbums(ctx context.Context) ([]Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, date_published
		FROM albums
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select albums: %w", err)
	}
	defer rows.Close()

	albums, err := scanAlbumRows(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

// AlbumArtists lists the artists linked to an album. It fails with
// ErrAlbumNotFound when the album does not exist.
func (s *Store) AlbumArtists(ctx context.Context, albumID int64) ([]Artist, error) {
	if err := s.albumExists(ctx, albumID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ar.id, ar.name, ar.date_formed, ar.genre
		FROM artists ar
		JOIN album_artists l ON l.artist_id = ar.id
		WHERE l.album_id = $1
		ORDER BY ar.id ASC
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("select album artists: %w", err)
	}
	defer rows.Close()

	artists, err := scanArtistRows(rows)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album artists: %w", err)
	}
	return artists, nil
}

// AddAlbumArtists links every artist in artistIDs to the album. All
// artist ids are resolved before any link is written; a duplicate link
// request is a no-op rather than an error.
func (s *Store) AddAlbumArtists(ctx context.Context, albumID int64, artistIDs []int64) error {
	if err := s.albumExists(ctx, albumID); err != nil {
		return err
	}
	if err := s.artistsExist(ctx, artistIDs); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, artistID := range artistIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO album_artists (album_id, artist_id)
			VALUES ($1, $2)
			ON CONFLICT (album_id, artist_id) DO NOTHING
		`, albumID, artistID); err != nil {
			return fmt.Errorf("insert album link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// RemoveAlbumArtists unlinks the given artists from the album. The
// album is left in place even when its last link is removed; only
// artist deletion sweeps orphan albums.
func (s *Store) RemoveAlbumArtists(ctx context.Context, albumID int64, artistIDs []int64) error {
	if err := s.albumExists(ctx, albumID); err != nil {
		return err
	}
	if err := s.artistsExist(ctx, artistIDs); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		DELETE FROM album_artists
		WHERE album_id = $1 AND artist_id IN (%s)
	`, placeholders(2, len(artistIDs)))

	args := append([]any{albumID}, int64Args(artistIDs)...)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete album links: %w", err)
	}
	return nil
}

func (s *Store) albumExists(ctx context.Context, id int64) error {
	var found int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM albums
		WHERE id = $1
	`, id).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAlbumNotFound
		}
		return fmt.Errorf("lookup album: %w", err)
	}
	return nil
}

// artistsExist verifies that every id in artistIDs resolves to an
// artist row, failing before any write when at least one is unknown.
func (s *Store) artistsExist(ctx context.Context, artistIDs []int64) error {
	if len(artistIDs) == 0 {
		return fmt.Errorf("%w: at least one artist id is required", ErrInvalidArtist)
	}

	query := fmt.Sprintf(`
		SELECT COUNT(DISTINCT id)
		FROM artists
		WHERE id IN (%s)
	`, placeholders(1, len(artistIDs)))

	var found int
	if err := s.db.QueryRowContext(ctx, query, int64Args(artistIDs)...).Scan(&found); err != nil {
		return fmt.Errorf("count artists: %w", err)
	}
	if found != len(uniqueIDs(artistIDs)) {
		return fmt.Errorf("%w: one or more artist ids do not exist", ErrInvalidArtist)
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	var out []int64
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func validateAlbum(album Album) error {
	switch {
	case strings.TrimSpace(album.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidAlbum)
	case album.DatePublished.After(Today()):
		return fmt.Errorf("%w: publish date is in the future", ErrInvalidAlbum)
	}
	return nil
}

func scanAlbumRow(scanner rowScanner) (Album, error) {
	var a Album
	if err := scanner.Scan(&a.ID, &a.Name, &a.DatePublished); err != nil {
		return Album{}, fmt.Errorf("scan album: %w", err)
	}
	return a, nil
}

func scanAlbumRows(rows *sql.Rows) ([]Album, error) {
	var albums []Album
	for rows.Next() {
		a, err := scanAlbumRow(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, nil
}
