package main

import (
	"context"
	"os"

	"github.com/tracklift/tracklift/internal/repositories"
	"github.com/tracklift/tracklift/internal/services"
	"github.com/tracklift/tracklift/internal/shared"
	"github.com/tracklift/tracklift/internal/tasks"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService services.SourceCatalog
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify); err == nil {
			spotifyService = svc
		}
	}

	var youtubeService services.DestinationCatalog = services.NewYouTubeService(config.Credentials.YouTube)

	store := repositories.NewFileProgressStore(config.Transfer.ProgressPath)

	var cache tasks.TrackCacher
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			cache = repositories.NewSearchCacheAdapter(repositories.NewSearchCacheRepository(db))
		} else {
			logger.Warn("search cache unavailable", "err", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Spotify: spotifyService,
		YouTube: youtubeService,
		Store:   store,
		Cache:   cache,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "tracklift",
		Usage:    "Move playlists and liked songs from Spotify to YouTube Music",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
