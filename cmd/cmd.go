// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a configuration file from the bundled template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// spotifyCommand handles Spotify operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List Spotify playlists",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SpotifyPlaylists,
			},
			{
				Name:  "tracks",
				Usage: "Preview the tracks a transfer would extract",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "playlist",
						Usage: "Source playlist ID",
					},
					&cli.BoolFlag{
						Name:  "liked",
						Usage: "Use the liked songs library as the source",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SpotifyTracks,
			},
		},
	}
}

// ytmusicCommand handles YouTube Music operations
func ytmusicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "ytmusic",
		Aliases: []string{"ytm", "yt"},
		Usage:   "YouTube Music operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search YouTube Music proxy for a track",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.YTMusicSearch,
			},
			{
				Name:  "create",
				Usage: "Create playlist on YouTube Music",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "description",
						Usage: "Playlist description",
					},
					&cli.BoolFlag{
						Name:  "private",
						Usage: "Make playlist private",
						Value: true,
					},
				},
				Action: r.YTMusicCreate,
			},
			{
				Name:  "add",
				Usage: "Add a track to an existing playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist-id",
						Usage:    "Playlist ID to add the track to",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "track",
						Usage:    "Track search query",
						Required: true,
					},
				},
				Action: r.YTMusicAdd,
			},
		},
	}
}

// transferCommand handles resumable playlist transfer operations
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Transfer playlists between services",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a resumable Spotify → YouTube Music transfer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "playlist",
						Usage: "Source playlist ID",
					},
					&cli.BoolFlag{
						Name:  "liked",
						Usage: "Transfer the liked songs library",
					},
					&cli.StringFlag{
						Name:  "dest",
						Usage: "Name for a new destination playlist",
					},
					&cli.StringFlag{
						Name:  "dest-id",
						Usage: "ID of an existing destination playlist",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Description for a created playlist",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "Write a run report to this path",
					},
					&cli.StringFlag{
						Name:  "report-format",
						Usage: "Report format (json, markdown, text)",
						Value: "json",
					},
				},
				Action: r.TransferRun,
			},
			{
				Name:   "status",
				Usage:  "Show saved transfer progress",
				Action: r.TransferStatus,
			},
			{
				Name:   "clear",
				Usage:  "Discard saved transfer progress",
				Action: r.TransferClear,
			},
		},
	}
}

// cacheCommand handles the local search-result cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and manage the local search cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count",
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Purge all cached search results",
				Action: r.CacheClear,
			},
		},
	}
}
