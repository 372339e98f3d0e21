package models

import (
	"fmt"
	"time"
)

// CachedHit is a persisted destination search result keyed by its normalized query.
//
// Implements [Model]. Cached hits let a resumed or repeated transfer skip
// redundant destination searches for tracks it has already matched once.
type CachedHit struct {
	id        string
	sequence  int
	query     string
	hit       SearchHit
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedHit creates a cached search result for the given normalized query.
func NewCachedHit(sequence int, query string, hit SearchHit) *CachedHit {
	now := time.Now()
	return &CachedHit{
		sequence:  sequence,
		query:     query,
		hit:       hit,
		createdAt: now,
		updatedAt: now,
	}
}

func (c *CachedHit) ID() string            { return c.id }
func (c *CachedHit) Sequence() int         { return c.sequence }
func (c *CachedHit) Query() string         { return c.query }
func (c *CachedHit) MediaID() string       { return c.hit.MediaID }
func (c *CachedHit) Title() string         { return c.hit.Title }
func (c *CachedHit) Artist() string        { return c.hit.Artist }
func (c *CachedHit) Hit() SearchHit        { return c.hit }
func (c *CachedHit) CreatedAt() time.Time  { return c.createdAt }
func (c *CachedHit) UpdatedAt() time.Time  { return c.updatedAt }
func (c *CachedHit) DeletedAt() *time.Time { return c.deletedAt }

func (c *CachedHit) SetID(id string)           { c.id = id }
func (c *CachedHit) SetCreatedAt(t time.Time)  { c.createdAt = t }
func (c *CachedHit) SetUpdatedAt(t time.Time)  { c.updatedAt = t }
func (c *CachedHit) SetDeletedAt(t *time.Time) { c.deletedAt = t }

// Validate checks that the cached hit has a query and a media identifier.
func (c *CachedHit) Validate() error {
	if c.query == "" {
		return fmt.Errorf("cached hit requires a query")
	}
	if c.hit.MediaID == "" {
		return fmt.Errorf("cached hit requires a media ID")
	}
	return nil
}
