package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tunecrate/internal/auth"
	"tunecrate/internal/config"
	"tunecrate/internal/store"
)

func bootstrap(ctx context.Context, cfg *config.Config, dataStore *store.Store) error {
	if err := ensureAdmin(ctx, cfg.Admin, dataStore); err != nil {
		return err
	}
	if err := ensureDemoCatalog(ctx, dataStore); err != nil {
		return err
	}
	return nil
}

func ensureAdmin(ctx context.Context, cfg config.AdminConfig, dataStore *store.Store) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := dataStore.CreateAdmin(ctx, cfg.Email, hash); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	log.Info().Str("email", cfg.Email).Msg("admin account ensured")
	return nil
}

// ensureDemoCatalog seeds a handful of tracks so a fresh instance has
// something to browse. Skipped when the catalog already has rows.
func ensureDemoCatalog(ctx context.Context, dataStore *store.Store) error {
	existing, err := dataStore.ListSongs(ctx, 0, 1)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	demo := []store.Song{
		{TrackName: "Roygbiv", ArtistName: "Boards of Canada", AlbumName: "Music Has the Right to Children", Genres: "Electronic", ReleaseYear: 1998, Rating: 5},
		{TrackName: "Teardrop", ArtistName: "Massive Attack", AlbumName: "Mezzanine", Genres: "Trip Hop", ReleaseYear: 1998, Rating: 4},
		{TrackName: "Glory Box", ArtistName: "Portishead", AlbumName: "Dummy", Genres: "Trip Hop", ReleaseYear: 1994, Rating: 5},
		{TrackName: "No Surprises", ArtistName: "Radiohead", AlbumName: "OK Computer", Genres: "Alternative Rock", ReleaseYear: 1997, Rating: 5},
		{TrackName: "Les Nuits", ArtistName: "Nightmares on Wax", AlbumName: "Carboot Soul", Genres: "Downtempo", ReleaseYear: 1999, Rating: 4},
		{TrackName: "Kerala", ArtistName: "Bonobo", AlbumName: "Migration", Genres: "Electronic", ReleaseYear: 2017, Rating: 4},
		{TrackName: "Says", ArtistName: "Nils Frahm", AlbumName: "Spaces", Genres: "Modern Classical", ReleaseYear: 2013, Rating: 5},
		{TrackName: "Them Changes", ArtistName: "Thundercat", AlbumName: "Drunk", Genres: "Funk", ReleaseYear: 2017, Rating: 3},
	}

	for _, song := range demo {
		if _, err := dataStore.AddSong(ctx, song); err != nil {
			return fmt.Errorf("seed song %q: %w", song.TrackName, err)
		}
	}

	log.Info().Int("count", len(demo)).Msg("demo catalog seeded")
	return nil
}
