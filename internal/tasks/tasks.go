package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tracklift/tracklift/internal/models"
	"github.com/tracklift/tracklift/internal/services"
	"github.com/tracklift/tracklift/internal/shared"
	"golang.org/x/time/rate"
)

// ProgressStore persists and restores transfer state so an interrupted run
// can resume. A single record is kept; Save overwrites it atomically.
type ProgressStore interface {
	// Save overwrites the persisted state record.
	Save(state *models.TransferState) error

	// Load returns the persisted record, or nil when none exists.
	// Absence is not an error.
	Load() (*models.TransferState, error)

	// Clear deletes the persisted record.
	Clear() error
}

// TrackCacher caches destination search results by normalized query.
//
// A nil cacher disables caching; lookups fall through to live search.
type TrackCacher interface {
	Lookup(query string) (models.SearchHit, bool)
	Store(query string, hit models.SearchHit) error
}

// TransferRequest parameterizes a single transfer invocation.
type TransferRequest struct {
	Source          SourceSelector
	DestinationName string // Name for a new destination playlist
	DestinationID   string // ID of an existing destination playlist; takes precedence
	Description     string // Description for a created playlist
}

// Validate checks both selectors before any network call is made.
func (r TransferRequest) Validate() error {
	if r.DestinationName == "" && r.DestinationID == "" {
		return fmt.Errorf("%w: a destination playlist name or ID", shared.ErrMissingArgument)
	}
	return r.Source.Validate()
}

// SkippedTrack records a track permanently abandoned during a run and why.
type SkippedTrack struct {
	Track  models.Track
	Reason string
}

// TransferRunResult contains all data from one engine run.
type TransferRunResult struct {
	PlaylistID     string         // Destination playlist the run targeted
	Added          []string       // Track names added during this run, in order
	Skipped        []SkippedTrack // Tracks permanently abandoned this run
	TotalTracks    int            // Tracks pending at the start of this run
	TotalProcessed int            // Cumulative adds including prior resumed runs
	RemainingCount int            // Tracks still pending (nonzero only on quota stop)
	Resumed        bool           // Whether the run resumed persisted state
	QuotaStopped   bool           // Whether the run ended on quota exhaustion
}

// EngineOpts contains tuning and optional collaborators for a TransferEngine.
type EngineOpts struct {
	MaxRetries int           // Attempts per track for transient failures (default 3)
	Delay      time.Duration // Base pacing/backoff delay (default 2s)
	Cache      TrackCacher   // Optional search-result cache
	Logger     *log.Logger
	Limiter    *rate.Limiter       // Inter-track pacing; defaults to one add per Delay
	Sleep      func(time.Duration) // Retry backoff sleeper; defaults to time.Sleep
}

const (
	defaultMaxRetries = 3
	defaultDelay      = 2 * time.Second
)

// TransferEngine drives the resumable per-track transfer loop, composing a
// source catalog, a destination catalog, and a progress store.
type TransferEngine struct {
	source     services.SourceCatalog
	dest       services.DestinationCatalog
	store      ProgressStore
	cache      TrackCacher
	logger     *log.Logger
	maxRetries int
	delay      time.Duration
	limiter    *rate.Limiter
	sleep      func(time.Duration)
}

// NewTransferEngine creates a TransferEngine with the provided collaborators,
// applying defaults for unset options.
func NewTransferEngine(source services.SourceCatalog, dest services.DestinationCatalog, store ProgressStore, opts EngineOpts) *TransferEngine {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Delay <= 0 {
		opts.Delay = defaultDelay
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	return &TransferEngine{
		source:     source,
		dest:       dest,
		store:      store,
		cache:      opts.Cache,
		logger:     opts.Logger,
		maxRetries: opts.MaxRetries,
		delay:      opts.Delay,
		limiter:    opts.Limiter,
		sleep:      opts.Sleep,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *TransferEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run executes a transfer: bootstrap or resume state, then resolve and append
// each pending track in order.
//
// A quota-exhaustion signal from the destination ends the run gracefully with
// state persisted; the returned result has QuotaStopped set and the error is
// nil. Per-track failures never abort the run.
func (e *TransferEngine) Run(ctx context.Context, req TransferRequest, progress chan<- ProgressUpdate) (*TransferRunResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if e.source == nil || e.dest == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if e.store == nil {
		return nil, fmt.Errorf("%w: progress store not initialized", shared.ErrServiceUnavailable)
	}

	state, resumed, err := e.bootstrap(ctx, req, progress)
	if err != nil {
		return nil, err
	}

	result := &TransferRunResult{
		PlaylistID:  state.PlaylistID,
		TotalTracks: len(state.Remaining),
		Resumed:     resumed,
	}

	// Explicit FIFO work queue; Processed and Remaining stay disjoint and a
	// track moves between them only on a successful add.
	queue := append([]models.Track(nil), state.Remaining...)
	total := len(queue)
	step := 0

	for len(queue) > 0 {
		tr := queue[0]
		step++

		outcome := e.processTrack(ctx, state.PlaylistID, tr, progress)
		switch outcome.kind {
		case trackAdded:
			queue = queue[1:]
			state.Processed = append(state.Processed, tr.Name)
			state.Remaining = queue
			result.Added = append(result.Added, tr.Name)
			e.sendProgress(progress, addedUpdate(step, total, tr))

			if err := e.store.Save(state); err != nil {
				return result, fmt.Errorf("failed to persist progress: %w", err)
			}

			// Self-imposed pacing between tracks to respect destination limits.
			if err := e.limiter.Wait(ctx); err != nil {
				return result, err
			}

		case trackSkipped:
			queue = queue[1:]
			state.Remaining = queue
			result.Skipped = append(result.Skipped, SkippedTrack{Track: tr, Reason: outcome.reason})
			e.sendProgress(progress, skippedUpdate(step, total, tr, outcome.reason))

		case trackQuotaStop:
			// The triggering track stays at the head of Remaining, unappended.
			state.Remaining = queue
			if err := e.store.Save(state); err != nil {
				return result, fmt.Errorf("failed to persist progress on quota stop: %w", err)
			}
			result.QuotaStopped = true
			result.RemainingCount = len(queue)
			result.TotalProcessed = len(state.Processed)
			e.sendProgress(progress, quotaStopUpdate(len(result.Added)))
			e.logger.Warn("destination quota exceeded, stopping run", "added", len(result.Added), "remaining", len(queue))
			return result, nil
		}
	}

	if err := e.store.Clear(); err != nil {
		return result, fmt.Errorf("failed to clear progress: %w", err)
	}

	result.TotalProcessed = len(state.Processed)
	e.sendProgress(progress, completeUpdate(len(result.Added)))
	e.logger.Info("transfer complete", "added", len(result.Added), "skipped", len(result.Skipped))
	return result, nil
}

// bootstrap loads persisted state or builds fresh state from extraction and
// resolution.
//
// Persisted state is resumed when no explicit destination ID was requested,
// or when the requested ID matches the record. A mismatched record is
// ignored and the run starts fresh.
func (e *TransferEngine) bootstrap(ctx context.Context, req TransferRequest, progress chan<- ProgressUpdate) (*models.TransferState, bool, error) {
	state, err := e.store.Load()
	if err != nil {
		return nil, false, fmt.Errorf("failed to load saved progress: %w", err)
	}

	if state != nil && (req.DestinationID == "" || req.DestinationID == state.PlaylistID) {
		e.sendProgress(progress, resumedUpdate(len(state.Processed), len(state.Remaining)))
		e.logger.Info("resuming transfer", "playlist", state.PlaylistID, "processed", len(state.Processed), "remaining", len(state.Remaining))
		return state, true, nil
	}

	e.sendProgress(progress, extractingUpdate(e.source.Name()))
	tracks, skipped, err := ExtractTracks(ctx, e.source, req.Source)
	if err != nil {
		return nil, false, err
	}
	e.sendProgress(progress, extractedUpdate(len(tracks), skipped))

	playlist, err := ResolvePlaylist(ctx, e.dest, req.DestinationName, req.DestinationID, req.Description)
	if err != nil {
		return nil, false, err
	}
	e.sendProgress(progress, resolvedUpdate(playlist, req.DestinationID == ""))

	return &models.TransferState{
		PlaylistID: playlist.ID,
		Processed:  []string{},
		Remaining:  tracks,
	}, false, nil
}

type trackOutcomeKind int

const (
	trackAdded trackOutcomeKind = iota
	trackSkipped
	trackQuotaStop
)

type trackOutcome struct {
	kind   trackOutcomeKind
	reason string
}

func skipOutcome(format string, args ...any) trackOutcome {
	return trackOutcome{kind: trackSkipped, reason: fmt.Sprintf(format, args...)}
}

// processTrack runs the per-track state machine: search, append, and bounded
// retry with doubling backoff.
//
// A search miss and an unclassified error both abandon the track without
// consuming retry budget; only transient destination failures are retried.
func (e *TransferEngine) processTrack(ctx context.Context, playlistID string, tr models.Track, progress chan<- ProgressUpdate) trackOutcome {
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		hit, found, err := e.findMatch(ctx, tr)

		if err == nil {
			if !found {
				e.logger.Info("no results found", "track", tr.Name)
				return skipOutcome("no search results")
			}
			err = e.dest.AddPlaylistItem(ctx, playlistID, hit.MediaID)
			if err == nil {
				return trackOutcome{kind: trackAdded}
			}
		}

		switch {
		case errors.Is(err, shared.ErrQuotaExceeded):
			return trackOutcome{kind: trackQuotaStop}

		case errors.Is(err, shared.ErrAPIRequest):
			if attempt == e.maxRetries {
				e.logger.Error("abandoning track after retries", "track", tr.Name, "attempts", e.maxRetries, "err", err)
				return skipOutcome("failed after %d attempts: %v", e.maxRetries, err)
			}
			e.sendProgress(progress, retryUpdate(attempt, e.maxRetries, tr))
			e.sleep(e.delay << (attempt - 1))

		default:
			e.logger.Error("unexpected error", "track", tr.Name, "err", err)
			return skipOutcome("unexpected error: %v", err)
		}
	}

	return skipOutcome("failed after %d attempts", e.maxRetries)
}

// findMatch resolves a track to a destination media item, consulting the
// cache before searching.
func (e *TransferEngine) findMatch(ctx context.Context, tr models.Track) (models.SearchHit, bool, error) {
	query := tr.SearchQuery()
	key := shared.NormalizeQuery(query)

	if e.cache != nil {
		if hit, ok := e.cache.Lookup(key); ok {
			return hit, true, nil
		}
	}

	hits, err := e.dest.Search(ctx, query, 1)
	if err != nil {
		return models.SearchHit{}, false, err
	}
	if len(hits) == 0 {
		return models.SearchHit{}, false, nil
	}

	if e.cache != nil {
		if err := e.cache.Store(key, hits[0]); err != nil {
			e.logger.Warn("failed to cache search result", "query", key, "err", err)
		}
	}

	return hits[0], true, nil
}
