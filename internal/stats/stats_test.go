package stats_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle/assets"
	"github.com/robalobadob/wordle/apps/wordle/internal/db"
	"github.com/robalobadob/wordle/apps/wordle/internal/stats"
)

func TestRecord(t *testing.T) {
	var s stats.Stats
	assert.Equal(t, 0, s.WinPercent())

	s.Record(true)
	s.Record(true)
	s.Record(false)
	s.Record(true)

	assert.Equal(t, stats.Stats{Played: 4, Wins: 3, Losses: 1, Streak: 1, MaxStreak: 2}, s)
	assert.Equal(t, 75, s.WinPercent())
}

func TestBump(t *testing.T) {
	conn, err := db.Open(db.Memory)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.Migrate(conn, assets.Migrations()))

	_, err = conn.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES ('u1','alice','x','2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	ctx := context.Background()
	tx, err := conn.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = stats.Bump(ctx, tx, "u1", true)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	got, err := stats.Bump(ctx, conn, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, stats.Stats{Played: 2, Wins: 1, Losses: 1, Streak: 0, MaxStreak: 1}, got)

	loaded, err := stats.Load(ctx, conn, "u1")
	require.NoError(t, err)
	assert.Equal(t, got, loaded)

	_, err = stats.Bump(ctx, conn, "missing", true)
	assert.Error(t, err)
}
