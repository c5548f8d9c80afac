package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle/internal/game"
)

func TestMemory_Expiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newMemory(time.Hour, func() time.Time { return now })
	ctx := context.Background()

	old := game.New("CRANE")
	require.NoError(t, m.Save(ctx, old))

	now = now.Add(30 * time.Minute)
	_, err := m.Get(ctx, old.ID)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = m.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Update(ctx, old.ID, func(*game.Game) error { return nil }), ErrNotFound)

	// An expired ID can be inserted again, and the next write sweeps the map.
	fresh := game.New("SLOTH")
	fresh.ID = old.ID
	require.NoError(t, m.Insert(ctx, fresh))
	require.NoError(t, m.Save(ctx, game.New("PIXEL")))
	assert.Len(t, m.games, 2)

	now = now.Add(2 * time.Hour)
	require.NoError(t, m.Save(ctx, game.New("GHOST")))
	assert.Len(t, m.games, 1, "expired entries are swept on write")
}

func TestMemory_NoTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newMemory(0, func() time.Time { return now })
	g := game.New("CRANE")
	require.NoError(t, m.Save(context.Background(), g))

	now = now.Add(1000 * time.Hour)
	_, err := m.Get(context.Background(), g.ID)
	assert.NoError(t, err)
}
