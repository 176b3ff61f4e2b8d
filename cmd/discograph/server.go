package main

import (
	"net/http"

	"discograph/internal/app/albums"
	"discograph/internal/app/artists"
	"discograph/internal/app/songs"
	"discograph/internal/httpapi"
	"discograph/internal/middleware"
	"discograph/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	songSvc := songs.New(dataStore)
	albumSvc := albums.New(dataStore)
	artistSvc := artists.New(dataStore)

	// Mux applies the first registered middleware outermost, so the
	// access log wraps recovery and panicking requests are still logged.
	router := httpapi.New(songSvc, albumSvc, artistSvc).Routes()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Recovery())

	return middleware.CORS(cfg.AllowedOrigins)(router)
}
