// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer used for ephemeral game sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores copies of *game.Game keyed by ID in a map; callers never share state.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Entries expire ttl after their last write, like the Redis store; expired
//     entries are swept out on writes.
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing game IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/wordle/internal/game"
)

var (
	// ErrNotFound is returned when no game has the requested ID.
	ErrNotFound = errors.New("game not found")
	// ErrExists is returned by Insert when the ID is already taken.
	ErrExists = errors.New("game already exists")
)

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory (this file) or Redis (redis.go).
type Store interface {
	// Save persists or replaces a game state.
	Save(ctx context.Context, g *game.Game) error

	// Insert persists g only if no game with its ID exists yet.
	Insert(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update loads a game, applies fn and saves the result atomically with
	// respect to other Updates of the same ID. If fn returns an error nothing
	// is saved and that error is returned.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete removes a game. Deleting a missing game is not an error.
	Delete(ctx context.Context, id string) error
}

// sweepEvery bounds how often writes scan the map for expired entries.
const sweepEvery = time.Minute

type entry struct {
	g       *game.Game
	expires time.Time // zero: never
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu        sync.RWMutex     // guards games and nextSweep
	games     map[string]entry // keyed by Game.ID
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryStore constructs a new in-memory Store. Games expire ttl after
// their last write; ttl <= 0 keeps them until the process exits.
func NewMemoryStore(ttl time.Duration) Store {
	return newMemory(ttl, time.Now)
}

func newMemory(ttl time.Duration, now func() time.Time) *memory {
	return &memory{games: make(map[string]entry), ttl: ttl, now: now}
}

// live returns the entry for id unless it is missing or expired. Caller holds mu.
func (m *memory) live(id string) (entry, bool) {
	e, ok := m.games[id]
	if !ok || (!e.expires.IsZero() && !m.now().Before(e.expires)) {
		return entry{}, false
	}
	return e, true
}

// put stores a copy of g and sweeps expired entries when due. Caller holds mu.
func (m *memory) put(g *game.Game) {
	now := m.now()
	e := entry{g: g.Clone()}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
	}
	m.games[g.ID] = e

	if m.ttl <= 0 || now.Before(m.nextSweep) {
		return
	}
	for id, old := range m.games {
		if !now.Before(old.expires) {
			delete(m.games, id)
		}
	}
	m.nextSweep = now.Add(sweepEvery)
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(g)
	return nil
}

func (m *memory) Insert(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(g.ID); ok {
		return ErrExists
	}
	m.put(g)
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.live(id); ok {
		return e.g.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.live(id)
	if !ok {
		return ErrNotFound
	}
	g := cur.g.Clone()
	if err := fn(g); err != nil {
		return err
	}
	m.put(g)
	return nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}
