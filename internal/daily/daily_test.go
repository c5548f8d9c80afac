package daily_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle/assets"
	"github.com/robalobadob/wordle/apps/wordle/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle/internal/db"
	"github.com/robalobadob/wordle/apps/wordle/internal/game"
	"github.com/robalobadob/wordle/apps/wordle/internal/words"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2024, 3, 2, 5, 0, 0, 0, loc)
	assert.Equal(t, "2024-03-01", daily.DateKey(ts))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	later := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)

	i := daily.WordIndex(day, "salt", 100)
	assert.Equal(t, i, daily.WordIndex(later, "salt", 100))
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 100)
	assert.Equal(t, 0, daily.WordIndex(day, "salt", 0))

	// Different salts spread across the list.
	seen := map[int]bool{}
	for _, salt := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		seen[daily.WordIndex(day, salt, 1000)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestToday(t *testing.T) {
	dict, err := words.New([]string{"crane", "sloth", "pixel", "ghost", "robot"}, nil)
	require.NoError(t, err)
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	p := daily.Today(dict, day, "salt")
	assert.Equal(t, "2024-03-01", p.Date)
	assert.Equal(t, daily.WordIndex(day, "salt", 5), p.Index)
	assert.Equal(t, dict.Answer(p.Index), p.Answer)
	assert.Equal(t, p, daily.Today(dict, day.Add(10*time.Hour), "salt"))
}

func TestGameID(t *testing.T) {
	id := daily.GameID("u1", "2024-03-01")
	assert.Equal(t, id, daily.GameID("u1", "2024-03-01"), "stable across calls")
	assert.NotEqual(t, id, daily.GameID("u2", "2024-03-01"))
	assert.NotEqual(t, id, daily.GameID("u1", "2024-03-02"))
	assert.NotContains(t, id, "u1")
	assert.True(t, daily.IsGameID(id))
	assert.False(t, daily.IsGameID(game.New("CRANE").ID))
}

func TestStore(t *testing.T) {
	conn, err := db.Open(db.Memory)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, db.Migrate(conn, assets.Migrations()))

	ctx := context.Background()
	s := daily.NewStore(conn)

	played, err := s.AlreadyPlayed(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2024-03-01", Guesses: 4, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u2", Date: "2024-03-01", Guesses: 3, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u3", Date: "2024-03-01", Guesses: 6, ElapsedMs: 1000}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u4", Date: "2024-03-02", Guesses: 1, ElapsedMs: 10}))
	// Second result for u1 is ignored.
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2024-03-01", Guesses: 1, ElapsedMs: 1}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := s.Leaderboard(ctx, "2024-03-01", 0)
	require.NoError(t, err)
	assert.Equal(t, []daily.LBRow{
		{UserID: "u3", Guesses: 6, ElapsedMs: 1000},
		{UserID: "u2", Guesses: 3, ElapsedMs: 9000},
		{UserID: "u1", Guesses: 4, ElapsedMs: 9000},
	}, top)

	// A loss counts as played but stays off the leaderboard.
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u5", Date: "2024-03-01", Outcome: game.OutcomeLost, Guesses: 6, ElapsedMs: 5}))
	played, err = s.AlreadyPlayed(ctx, "u5", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, played)

	top, err = s.Leaderboard(ctx, "2024-03-01", 0)
	require.NoError(t, err)
	assert.Len(t, top, 3)

	top, err = s.Leaderboard(ctx, "2024-03-01", 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
