// Package models defines domain entities and persistence interfaces for the tracklift migration tool.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [Track] : Song descriptor (name + artists) extracted from the source service
//   - [Playlist] : Basic playlist metadata on either service
//   - [SearchHit] : Best-match result from a destination catalog search
//   - [TransferState] : Persisted progress record for a resumable transfer
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [CachedHit] : Cached destination search result keyed by normalized query
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
