// Package tasks implements the resumable playlist transfer pipeline.
//
// The core abstraction is TransferEngine, which drives the per-track loop:
// search the destination, append the match, persist progress, pace against
// rate limits, retry transient failures, and stop gracefully on quota
// exhaustion. Operations emit progress updates via channels for non-blocking
// status reporting to the CLI layer.
package tasks
