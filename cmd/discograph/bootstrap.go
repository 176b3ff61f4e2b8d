package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"discograph/internal/store"
)

// bootstrapDemoData seeds a small starter catalog so the demo front-end
// has something to render. It is a no-op when the schema is missing or
// the catalog already has artists.
func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	for _, table := range []string{"artists", "albums", "songs", "album_artists"} {
		exists, err := tableExists(ctx, db, table)
		if err != nil {
			return fmt.Errorf("check %s table: %w", table, err)
		}
		if !exists {
			return nil
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM artists
	`).Scan(&count); err != nil {
		return fmt.Errorf("count artists: %w", err)
	}
	if count > 0 {
		return nil
	}

	type seedSong struct {
		Name       string
		LengthSecs int
	}
	type seedAlbum struct {
		Name      string
		Published store.Date
		Songs     []seedSong
	}
	type seedArtist struct {
		Name   string
		Formed store.Date
		Genre  store.Genre
		Albums []seedAlbum
	}

	artists := []seedArtist{
		{
			Name:   "Black Sabbath",
			Formed: store.NewDate(1968, time.September, 1),
			Genre:  store.GenreMetal,
			Albums: []seedAlbum{
				{
					Name:      "Paranoid",
					Published: store.NewDate(1970, time.September, 18),
					Songs: []seedSong{
						{Name: "War Pigs", LengthSecs: 478},
						{Name: "Paranoid", LengthSecs: 168},
						{Name: "Iron Man", LengthSecs: 356},
					},
				},
			},
		},
		{
			Name:   "Miles Davis",
			Formed: store.NewDate(1944, time.May, 1),
			Genre:  store.GenreJazz,
			Albums: []seedAlbum{
				{
					Name:      "Kind of Blue",
					Published: store.NewDate(1959, time.August, 17),
					Songs: []seedSong{
						{Name: "So What", LengthSecs: 562},
						{Name: "Blue in Green", LengthSecs: 337},
					},
				},
			},
		},
		{
			Name:   "Daft Punk",
			Formed: store.NewDate(1993, time.January, 1),
			Genre:  store.GenrePop,
		},
	}

	for _, artist := range artists {
		artistID, err := dataStore.CreateArtist(ctx, store.Artist{
			Name:       artist.Name,
			DateFormed: artist.Formed,
			Genre:      artist.Genre,
		})
		if err != nil {
			return fmt.Errorf("seed artist %q: %w", artist.Name, err)
		}

		for _, album := range artist.Albums {
			albumID, err := dataStore.CreateAlbum(ctx, artistID, store.Album{
				Name:          album.Name,
				DatePublished: album.Published,
			})
			if err != nil {
				return fmt.Errorf("seed album %q: %w", album.Name, err)
			}

			for _, song := range album.Songs {
				if _, err := dataStore.CreateSong(ctx, store.Song{
					Name:       song.Name,
					LengthSecs: song.LengthSecs,
					AlbumID:    albumID,
				}); err != nil {
					return fmt.Errorf("seed song %q: %w", song.Name, err)
				}
			}
		}
	}

	return nil
}

func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var name sql.NullString
	if err := db.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
