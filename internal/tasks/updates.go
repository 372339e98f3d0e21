package tasks

import (
	"fmt"

	"github.com/tracklift/tracklift/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced consumers
}

// Operation phase enumeration
type Phase int

const (
	LoadState Phase = iota
	ExtractSource
	ResolveDestination
	AddTrack
	SkipTrack
	RetryTrack
	QuotaStop
	Complete
)

func (p Phase) String() string {
	switch p {
	case LoadState:
		return "load_state"
	case ExtractSource:
		return "extract_source"
	case ResolveDestination:
		return "resolve_destination"
	case AddTrack:
		return "add_track"
	case SkipTrack:
		return "skip_track"
	case RetryTrack:
		return "retry_track"
	case QuotaStop:
		return "quota_stop"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func resumedUpdate(processed, remaining int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadState,
		Step:    processed,
		Total:   processed + remaining,
		Message: fmt.Sprintf("Resuming from saved progress (%d done, %d pending)", processed, remaining),
	}
}

func extractingUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExtractSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching tracks from %s...", name),
	}
}

func extractedUpdate(count, skipped int) ProgressUpdate {
	msg := fmt.Sprintf("Found %d tracks", count)
	if skipped > 0 {
		msg = fmt.Sprintf("Found %d tracks (%d skipped for missing data)", count, skipped)
	}
	return ProgressUpdate{
		Phase:   ExtractSource,
		Step:    1,
		Total:   1,
		Message: msg,
	}
}

func resolvedUpdate(pl *models.Playlist, created bool) ProgressUpdate {
	msg := fmt.Sprintf("Using existing playlist: %s (ID: %s)", pl.Name, pl.ID)
	if created {
		msg = fmt.Sprintf("Created playlist: %s (ID: %s)", pl.Name, pl.ID)
	}
	return ProgressUpdate{
		Phase:   ResolveDestination,
		Step:    1,
		Total:   1,
		Message: msg,
		Data:    pl,
	}
}

func addedUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Added: %s", tr.Name),
	}
}

func skippedUpdate(step, total int, tr models.Track, reason string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SkipTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Skipped %s: %s", tr.Name, reason),
	}
}

func retryUpdate(attempt, maxRetries int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RetryTrack,
		Step:    attempt,
		Total:   maxRetries,
		Message: fmt.Sprintf("Attempt %d failed for %s. Retrying...", attempt, tr.Name),
	}
}

func quotaStopUpdate(added int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QuotaStop,
		Step:    added,
		Total:   added,
		Message: fmt.Sprintf("Destination quota exceeded. Progress saved after %d added tracks; run again once the quota resets.", added),
	}
}

func completeUpdate(added int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    added,
		Total:   added,
		Message: fmt.Sprintf("All tracks processed. Added %d tracks.", added),
	}
}
