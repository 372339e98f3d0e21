package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/tracklift/tracklift/internal/formatter"
	"github.com/tracklift/tracklift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TransferRun runs a resumable Spotify → YouTube Music transfer.
//
// Progress is saved after every appended track, so rerunning the command
// after a quota stop or crash picks up where the last run left off.
func (r *Runner) TransferRun(ctx context.Context, cmd *cli.Command) error {
	req := tasks.TransferRequest{
		Source: tasks.SourceSelector{
			PlaylistID: cmd.String("playlist"),
			Liked:      cmd.Bool("liked"),
		},
		DestinationName: cmd.String("dest"),
		DestinationID:   cmd.String("dest-id"),
		Description:     cmd.String("description"),
	}

	r.logger.Info("starting transfer", "playlist", req.Source.PlaylistID, "liked", req.Source.Liked, "dest", req.DestinationName)
	r.writePlain("Starting transfer...\n\n")

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progressCh {
			switch update.Phase {
			case tasks.LoadState:
				r.writePlain("↺ %s\n", update.Message)
			case tasks.ExtractSource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ResolveDestination:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.AddTrack:
				r.writePlain("   [%d/%d] ✓ %s\n", update.Step, update.Total, update.Message)
			case tasks.SkipTrack:
				r.writePlain("   [%d/%d] ✗ %s\n", update.Step, update.Total, update.Message)
			case tasks.RetryTrack:
				r.writePlain("   ↻ %s\n", update.Message)
			case tasks.QuotaStop:
				r.writePlain("\n⚠ %s\n", update.Message)
			}
		}
	}()

	// Run the engine operation
	result, err := r.engine.Run(ctx, req, progressCh)
	close(progressCh)
	wg.Wait()

	if err != nil {
		return err
	}

	// Output summary
	r.writePlain("\n")
	if result.QuotaStopped {
		r.writePlainHeader("Transfer Paused (quota exceeded)")
		r.writePlain("Added this run: %d tracks\n", len(result.Added))
		r.writePlain("Remaining: %d tracks\n", result.RemainingCount)
		r.writePlain("\nRun the same command again once the quota resets to continue.\n")
	} else {
		r.writePlainHeader("Transfer Complete!")
		r.writePlain("Destination: %s\n", result.PlaylistID)
		r.writePlain("Added this run: %d tracks\n", len(result.Added))
		r.writePlain("Total transferred: %d tracks\n", result.TotalProcessed)
	}

	if result.Resumed {
		r.writePlain("Resumed from saved progress\n")
	}

	if len(result.Skipped) > 0 {
		r.writePlain("\nSkipped %d tracks:\n", len(result.Skipped))
		for _, skip := range result.Skipped {
			r.writePlain("  - %s (%s)\n", skip.Track.Name, skip.Reason)
		}
	}

	if reportPath := cmd.String("report"); reportPath != "" {
		written, err := formatter.WriteReport(result, cmd.String("report-format"), reportPath)
		if err != nil {
			return err
		}
		r.writePlain("\nReport written to %s\n", written)
	}

	return nil
}

// TransferStatus shows the saved progress record, if any.
func (r *Runner) TransferStatus(ctx context.Context, cmd *cli.Command) error {
	state, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load saved progress: %w", err)
	}

	if state == nil {
		r.writePlain("No transfer in progress.\n")
		return nil
	}

	r.writePlainHeader("Saved Transfer Progress")
	r.writePlain("Destination playlist: %s\n", state.PlaylistID)
	r.writePlain("Transferred: %d tracks\n", len(state.Processed))
	r.writePlain("Remaining: %d tracks\n", len(state.Remaining))
	return nil
}

// TransferClear discards the saved progress record.
func (r *Runner) TransferClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear saved progress: %w", err)
	}
	r.writePlain("Saved transfer progress cleared.\n")
	return nil
}
