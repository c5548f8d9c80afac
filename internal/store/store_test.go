package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle/internal/game"
	"github.com/robalobadob/wordle/apps/wordle/internal/store"
)

type allowAll struct{}

func (allowAll) IsValid(string) bool { return true }

func newRedis(t *testing.T, opts ...store.Option) (*store.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return store.NewRedisFromClient(client, opts...), mr
}

// runContract exercises the behaviour every Store must share.
func runContract(t *testing.T, s store.Store) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
		err = s.Update(ctx, "nope", func(*game.Game) error { return nil })
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("save and get", func(t *testing.T) {
		g := game.New("CRANE")
		_, _, err := g.ApplyGuess(allowAll{}, "TRACE")
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, g))

		got, err := s.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, g.Answer, got.Answer)
		assert.Equal(t, g.Rows, got.Rows)
		assert.Equal(t, g.Keyboard, got.Keyboard)
		assert.Equal(t, g.Outcome, got.Outcome)

		// Mutating the returned copy does not touch the stored game.
		got.Rows = append(got.Rows, game.Row{Word: "XXXXX"})
		again, err := s.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Len(t, again.Rows, 1)
	})

	t.Run("insert", func(t *testing.T) {
		g := game.New("CRANE")
		require.NoError(t, s.Insert(ctx, g))

		again := g.Clone()
		_, _, err := again.ApplyGuess(allowAll{}, "CRANE")
		require.NoError(t, err)
		assert.ErrorIs(t, s.Insert(ctx, again), store.ErrExists)

		got, err := s.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Rows, "existing game is left untouched")
	})

	t.Run("update", func(t *testing.T) {
		g := game.New("CRANE")
		require.NoError(t, s.Save(ctx, g))

		err := s.Update(ctx, g.ID, func(g *game.Game) error {
			_, _, err := g.ApplyGuess(allowAll{}, "CRANE")
			return err
		})
		require.NoError(t, err)
		got, err := s.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, game.OutcomeWon, got.Outcome)

		boom := errors.New("boom")
		err = s.Update(ctx, g.ID, func(g *game.Game) error {
			g.Outcome = game.OutcomeLost
			return boom
		})
		assert.ErrorIs(t, err, boom)
		got, err = s.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, game.OutcomeWon, got.Outcome)
	})

	t.Run("concurrent updates", func(t *testing.T) {
		g := game.New("CRANE")
		require.NoError(t, s.Save(ctx, g))

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Update(ctx, g.ID, func(g *game.Game) error {
					_, _, err := g.ApplyGuess(allowAll{}, "SLOTH")
					return err
				}))
			}()
		}
		wg.Wait()

		got, err := s.Get(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Guesses())
	})

	t.Run("delete", func(t *testing.T) {
		g := game.New("CRANE")
		require.NoError(t, s.Save(ctx, g))
		require.NoError(t, s.Delete(ctx, g.ID))
		_, err := s.Get(ctx, g.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.NoError(t, s.Delete(ctx, g.ID))
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	runContract(t, store.NewMemoryStore(time.Hour))
}

func TestRedisStore_Contract(t *testing.T) {
	s, _ := newRedis(t)
	runContract(t, s)
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newRedis(t, store.WithTTL(time.Minute))
	ctx := context.Background()

	g := game.New("CRANE")
	require.NoError(t, s.Save(ctx, g))
	assert.Equal(t, time.Minute, mr.TTL("wordle:game:"+g.ID))

	other := game.New("SLOTH")
	require.NoError(t, s.Insert(ctx, other))
	assert.Equal(t, time.Minute, mr.TTL("wordle:game:"+other.ID))

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(ctx, g.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStore_Prefix(t *testing.T) {
	s, mr := newRedis(t, store.WithPrefix("custom:"))
	ctx := context.Background()

	g := game.New("CRANE")
	require.NoError(t, s.Save(ctx, g))
	assert.True(t, mr.Exists("custom:"+g.ID))
	require.NoError(t, s.Ping(ctx))
}
