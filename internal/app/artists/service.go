package artists

import (
	"context"

	"discograph/internal/store"
)

// Store captures the persistence needs for artist workflows.
type Store interface {
	CreateArtist(ctx context.Context, artist store.Artist) (int64, error)
	ArtistByID(ctx context.Context, id int64) (store.Artist, error)
	UpdateArtist(ctx context.Context, id int64, artist store.Artist) error
	DeleteArtist(ctx context.Context, id int64) error
	ListArtists(ctx context.Context) ([]store.Artist, error)
	ArtistAlbums(ctx context.Context, artistID int64) ([]store.Album, error)
}

// Service coordinates artist-related operations.
type Service interface {
	Create(ctx context.Context, artist store.Artist) (int64, error)
	Get(ctx context.Context, id int64) (store.Artist, error)
	Update(ctx context.Context, id int64, artist store.Artist) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]store.Artist, error)
	Albums(ctx context.Context, artistID int64) ([]store.Album, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, artist store.Artist) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) Get(ctx context.Context, id int64) (store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return store.Artist{}, err
	}
	return s.store.ArtistByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, artist store.Artist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateArtist(ctx, id, artist)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}

func (s *service) List(ctx context.Context) ([]store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Albums(ctx context.Context, artistID int64) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ArtistAlbums(ctx, artistID)
}
