package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle/internal/game"
)

func classified(t *testing.T, secret, guess string) game.Row {
	t.Helper()
	marks, err := game.Classify(secret, guess)
	require.NoError(t, err)
	return game.Row{Word: guess, Marks: marks}
}

func TestUpdateKeyboard(t *testing.T) {
	var k game.Keyboard
	k = game.UpdateKeyboard(k, classified(t, "CRANE", "TRACE"))

	assert.Equal(t, game.MarkAbsent, k.Get('T'))
	assert.Equal(t, game.MarkCorrect, k.Get('R'))
	assert.Equal(t, game.MarkCorrect, k.Get('a'))
	assert.Equal(t, game.MarkPresent, k.Get('C'))
	assert.Equal(t, game.MarkCorrect, k.Get('E'))
	assert.Equal(t, game.MarkUnseen, k.Get('Z'))
	assert.Equal(t, game.MarkUnseen, k.Get('?'))
}

func TestUpdateKeyboard_Idempotent(t *testing.T) {
	row := classified(t, "ABBEY", "EERIE")
	once := game.UpdateKeyboard(game.Keyboard{}, row)
	twice := game.UpdateKeyboard(once, row)
	assert.Equal(t, once, twice)
}

func TestUpdateKeyboard_NeverRegresses(t *testing.T) {
	k := game.UpdateKeyboard(game.Keyboard{}, classified(t, "CRANE", "CRANE"))
	require.Equal(t, game.MarkCorrect, k.Get('E'))

	// EERIE against CRANE marks the leading Es Absent.
	k = game.UpdateKeyboard(k, classified(t, "CRANE", "EERIE"))
	assert.Equal(t, game.MarkCorrect, k.Get('E'))
	assert.Equal(t, game.MarkCorrect, k.Get('R'))
	assert.Equal(t, game.MarkAbsent, k.Get('I'))
}

func TestUpdateKeyboard_Upgrades(t *testing.T) {
	k := game.UpdateKeyboard(game.Keyboard{}, classified(t, "CRANE", "NACRE"))
	assert.Equal(t, game.MarkPresent, k.Get('N'))

	k = game.UpdateKeyboard(k, classified(t, "CRANE", "CRANE"))
	assert.Equal(t, game.MarkCorrect, k.Get('N'))
}

func TestMarkText(t *testing.T) {
	for _, m := range []game.Mark{game.MarkUnseen, game.MarkAbsent, game.MarkPresent, game.MarkCorrect} {
		b, err := m.MarshalText()
		require.NoError(t, err)
		var back game.Mark
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, m, back)
	}
	var m game.Mark
	assert.Error(t, m.UnmarshalText([]byte("green")))
}
