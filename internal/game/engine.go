// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Classify guesses with the classic two-pass Wordle algorithm.
//   - Validate and apply guesses (length, alphabetic, dictionary).
//   - Track the guess history, keyboard state and outcome: playing → won/lost.
//
// Notes:
//   - The dictionary is injected per call (Validator) so a Game stays plain
//     data and can be stored as JSON.
//   - Words are uppercase throughout; input is normalized on the way in.
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validator reports whether a word may be played. *words.Dictionary implements it.
type Validator interface {
	IsValid(word string) bool
}

// New constructs a new game for the given secret word.
func New(answer string) *Game {
	return &Game{
		ID:        uuid.NewString(),
		Answer:    strings.ToUpper(strings.TrimSpace(answer)),
		Rows:      []Row{},
		Outcome:   OutcomeUnresolved,
		CreatedAt: time.Now().UTC(),
	}
}

// Classify scores guess against secret. Both must be WordLength bytes and
// are expected to be uppercase; anything else is a caller bug and yields
// ErrInvalidLength with no partial result.
//
// Pass 1:
//   - Mark exact matches Correct; they consume that letter of the secret.
//   - Count the secret's remaining (unmatched) letters.
//
// Pass 2, left to right over the non-correct positions:
//   - If an unmatched copy of the letter remains, mark Present and consume it.
//   - Otherwise mark Absent.
//
// A guess that repeats a letter more often than the secret contains it is
// only credited as many times as the secret has copies.
func Classify(secret, guess string) (Marks, error) {
	var res Marks
	if len(secret) != WordLength {
		return res, fmt.Errorf("secret %q: %w", secret, ErrInvalidLength)
	}
	if len(guess) != WordLength {
		return res, fmt.Errorf("guess %q: %w", guess, ErrInvalidLength)
	}

	// Unmatched secret letters by index (A–Z).
	var counts [26]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == secret[i] {
			res[i] = MarkCorrect
		} else if j := letterIndex(secret[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		j := letterIndex(guess[i])
		if j >= 0 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the classified row and the new outcome.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly WordLength letters A–Z (case-insensitive).
//   - Guess must be accepted by dict. A rejected word does not use up a row.
//
// Outcome transitions:
//   - All marks Correct → won, whatever rows remain.
//   - Otherwise, the MaxGuesses-th row → lost.
func (g *Game) ApplyGuess(dict Validator, guess string) (Row, Outcome, error) {
	if g.Outcome.Finished() {
		return Row{}, g.Outcome, ErrGameFinished
	}
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(guess) != WordLength {
		return Row{}, g.Outcome, ErrInvalidLength
	}
	if !isAlpha(guess) {
		return Row{}, g.Outcome, ErrInvalidGuess
	}
	if !dict.IsValid(guess) {
		return Row{}, g.Outcome, ErrNotInDictionary
	}

	marks, err := Classify(g.Answer, guess)
	if err != nil {
		return Row{}, g.Outcome, err
	}
	row := Row{Word: guess, Marks: marks}
	g.Rows = append(g.Rows, row)
	g.Keyboard = UpdateKeyboard(g.Keyboard, row)

	if marks.AllCorrect() {
		g.Outcome = OutcomeWon
	} else if len(g.Rows) >= MaxGuesses {
		g.Outcome = OutcomeLost
	}
	return row, g.Outcome, nil
}

// Clone returns a copy that shares no mutable state with g.
func (g *Game) Clone() *Game {
	c := *g
	c.Rows = append(make([]Row, 0, len(g.Rows)), g.Rows...)
	return &c
}

// Guesses returns the number of submitted rows.
func (g *Game) Guesses() int { return len(g.Rows) }

// Replay re-classifies every stored row against the answer and rebuilds the
// keyboard. It fails if any stored row differs from a fresh classification,
// which would mean the history was altered after submission.
func (g *Game) Replay() (Keyboard, error) {
	var k Keyboard
	for i, row := range g.Rows {
		marks, err := Classify(g.Answer, row.Word)
		if err != nil {
			return k, fmt.Errorf("row %d: %w", i, err)
		}
		if marks != row.Marks {
			return k, fmt.Errorf("row %d (%s): stored marks do not match", i, row.Word)
		}
		k = UpdateKeyboard(k, row)
	}
	return k, nil
}

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
