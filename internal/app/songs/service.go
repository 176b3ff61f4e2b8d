package songs

import (
	"context"

	"discograph/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song store.Song) (int64, error)
	SongByID(ctx context.Context, id int64) (store.Song, error)
	UpdateSong(ctx context.Context, id int64, song store.Song) error
	DeleteSong(ctx context.Context, id int64) error
	ListSongs(ctx context.Context) ([]store.Song, error)
	SongsByAlbum(ctx context.Context, albumID int64) ([]store.Song, error)
}

// Service coordinates song-related operations.
type Service interface {
	Create(ctx context.Context, song store.Song) (int64, error)
	Get(ctx context.Context, id int64) (store.Song, error)
	Update(ctx context.Context, id int64, song store.Song) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]store.Song, error)
	ListByAlbum(ctx context.Context, albumID int64) ([]store.Song, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, song store.Song) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.CreateSong(ctx, song)
}

func (s *service) Get(ctx context.Context, id int64) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.SongByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, song store.Song) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateSong(ctx, id, song)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSong(ctx, id)
}

func (s *service) List(ctx context.Context) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx)
}

func (s *service) ListByAlbum(ctx context.Context, albumID int64) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SongsByAlbum(ctx, albumID)
}
