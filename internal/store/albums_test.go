package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestValidateAlbum(t *testing.T) {
	tests := []struct {
		name    string
		album   Album
		wantErr bool
	}{
		{
			name:  "valid album",
			album: Album{Name: "Paranoid", DatePublished: NewDate(1970, time.September, 18)},
		},
		{
			name:  "published today",
			album: Album{Name: "Fresh", DatePublished: Today()},
		},
		{
			name:    "missing name",
			album:   Album{DatePublished: NewDate(1970, time.September, 18)},
			wantErr: true,
		},
		{
			name: "future publish date",
			album: Album{
				Name:          "Time Machine",
				DatePublished: Date{Time: time.Now().AddDate(0, 0, 2)},
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := validateAlbum(tc.album)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func TestCreateAlbumSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	published := NewDate(1970, time.September, 18)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO albums (name, date_published)
		VALUES ($1, $2)
		RETURNING id
	`)).
		WithArgs("Paranoid", published.Time).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO album_artists (album_id, artist_id)
		VALUES ($1, $2)
	`)).
		WithArgs(int64(12), int64(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	id, err := s.CreateAlbum(context.Background(), 4, Album{
		Name:          " Paranoid ",
		DatePublished: published,
	})
	if err != nil {
		t.Fatalf("CreateAlbum error: %v", err)
	}
	if id != 12 {
		t.Fatalf("expected album id 12, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateAlbumUnknownArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err = s.CreateAlbum(context.Background(), 404, Album{
		Name:          "Nobody's Album",
		DatePublished: NewDate(2001, time.March, 3),
	})
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteAlbumNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM albums
		WHERE id = $1
	`)).
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM albums
		WHERE id = $1
	`)).
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// First delete succeeds, second hits a missing row.
	if err := s.DeleteAlbum(context.Background(), 12); err != nil {
		t.Fatalf("first DeleteAlbum error: %v", err)
	}
	if err := s.DeleteAlbum(context.Background(), 12); !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateAlbum(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	published := NewDate(1971, time.July, 21)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE albums
		SET name = $1, date_published = $2
		WHERE id = $3
	`)).
		WithArgs("Master of Reality", published.Time, int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.UpdateAlbum(context.Background(), 12, Album{
		Name:          "Master of Reality",
		DatePublished: published,
	}); err != nil {
		t.Fatalf("UpdateAlbum error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddAlbumArtistsUnknownArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM albums
		WHERE id = $1
	`)).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(DISTINCT id)
		FROM artists
		WHERE id IN ($1, $2)
	`)).
		WithArgs(int64(4), int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// No link may be written when any requested artist is unknown.
	err = s.AddAlbumArtists(context.Background(), 12, []int64{4, 404})
	if !errors.Is(err, ErrInvalidArtist) {
		t.Fatalf("expected ErrInvalidArtist, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddAlbumArtistsSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM albums
		WHERE id = $1
	`)).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(DISTINCT id)
		FROM artists
		WHERE id IN ($1, $2)
	`)).
		WithArgs(int64(4), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectBegin()
	insert := regexp.QuoteMeta(`
			INSERT INTO album_artists (album_id, artist_id)
			VALUES ($1, $2)
			ON CONFLICT (album_id, artist_id) DO NOTHING
		`)
	mock.ExpectExec(insert).
		WithArgs(int64(12), int64(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insert).
		WithArgs(int64(12), int64(5)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := s.AddAlbumArtists(context.Background(), 12, []int64{4, 5}); err != nil {
		t.Fatalf("AddAlbumArtists error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemoveAlbumArtistsLeavesAlbum(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM albums
		WHERE id = $1
	`)).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(DISTINCT id)
		FROM artists
		WHERE id IN ($1)
	`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM album_artists
		WHERE album_id = $1 AND artist_id IN ($2)
	`)).
		WithArgs(int64(12), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Unlinking the last artist does not delete the album itself.
	if err := s.RemoveAlbumArtists(context.Background(), 12, []int64{4}); err != nil {
		t.Fatalf("RemoveAlbumArtists error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlbumArtistsAlbumNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM albums
		WHERE id = $1
	`)).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err = s.AlbumArtists(context.Background(), 999)
	if !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
