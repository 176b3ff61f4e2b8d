package albums

import (
	"context"

	"discograph/internal/store"
)

// Store captures the persistence needs for album workflows.
type Store interface {
	CreateAlbum(ctx context.Context, artistID int64, album store.Album) (int64, error)
	AlbumByID(ctx context.Context, id int64) (store.Album, error)
	UpdateAlbum(ctx context.Context, id int64, album store.Album) error
	DeleteAlbum(ctx context.Context, id int64) error
	ListAlbums(ctx context.Context) ([]store.Album, error)
	AlbumArtists(ctx context.Context, albumID int64) ([]store.Artist, error)
	AddAlbumArtists(ctx context.Context, albumID int64, artistIDs []int64) error
	RemoveAlbumArtists(ctx context.Context, albumID int64, artistIDs []int64) error
}

// Service coordinates album-related operations, including the
// album-artist association.
type Service interface {
	Create(ctx context.Context, artistID int64, album store.Album) (int64, error)
	Get(ctx context.Context, id int64) (store.Album, error)
	Update(ctx context.Context, id int64, album store.Album) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]store.Album, error)
	Artists(ctx context.Context, albumID int64) ([]store.Artist, error)
	AddArtists(ctx context.Context, albumID int64, artistIDs []int64) error
	RemoveArtists(ctx context.Context, albumID int64, artistIDs []int64) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, artistID int64, album store.Album) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateAlbum(ctx, artistID, album)
}

func (s *service) Get(ctx context.Context, id int64) (store.Album, error) {
	if err := ctx.Err(); err != nil {
		return store.Album{}, err
	}
	return s.store.AlbumByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, album store.Album) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateAlbum(ctx, id, album)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteAlbum(ctx, id)
}

func (s *service) List(ctx context.Context) ([]store.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListAlbums(ctx)
}

func (s *service) Artists(ctx context.Context, albumID int64) ([]store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.AlbumArtists(ctx, albumID)
}

func (s *service) AddArtists(ctx context.Context, albumID int64, artistIDs []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.AddAlbumArtists(ctx, albumID, artistIDs)
}

func (s *service) RemoveArtists(ctx context.Context, albumID int64, artistIDs []int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveAlbumArtists(ctx, albumID, artistIDs)
}
