// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter classification of a guess (correct/present/absent),
//     plus "unseen" for keyboard keys no guess has touched yet.
//   - Row: one submitted guess and its marks.
//   - Outcome: coarse state of a session (playing/won/lost).
//   - Game: state for a single in-progress or finished game.

package game

import (
	"fmt"
	"time"
)

const (
	// WordLength is the number of letters in every secret word and guess.
	WordLength = 5
	// MaxGuesses is the number of rows a player gets before the game is lost.
	MaxGuesses = 6
)

// Mark represents the evaluation result for a single letter.
// Values are ordered: a higher Mark is better information about the letter.
type Mark uint8

const (
	MarkUnseen  Mark = iota // letter not guessed yet (keyboard only)
	MarkAbsent              // letter not in the answer (or no unmatched copies left)
	MarkPresent             // letter in the answer at another position
	MarkCorrect             // letter in the correct position
)

var markNames = [...]string{"unseen", "absent", "present", "correct"}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// MarshalText encodes the mark by name so JSON payloads read "correct" rather than 3.
func (m Mark) MarshalText() ([]byte, error) {
	if int(m) >= len(markNames) {
		return nil, fmt.Errorf("game: invalid mark %d", uint8(m))
	}
	return []byte(markNames[m]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	for i, n := range markNames {
		if n == string(b) {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown mark %q", b)
}

// Marks holds one Mark per position of a guess.
type Marks [WordLength]Mark

// AllCorrect reports whether every position is MarkCorrect.
func (ms Marks) AllCorrect() bool {
	for _, m := range ms {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// Row is a submitted guess together with its classification.
type Row struct {
	Word  string `json:"word"`
	Marks Marks  `json:"marks"`
}

// Outcome is the coarse state of a game.
type Outcome string

const (
	OutcomeUnresolved Outcome = "playing"
	OutcomeWon        Outcome = "won"
	OutcomeLost       Outcome = "lost"
)

// Finished reports whether the outcome is terminal.
func (o Outcome) Finished() bool { return o == OutcomeWon || o == OutcomeLost }

// Game holds the state of a single Wordle game session.
type Game struct {
	ID        string    `json:"id"`        // Unique game identifier.
	Answer    string    `json:"answer"`    // The secret word (always uppercase).
	Rows      []Row     `json:"rows"`      // Submitted guesses in order; append-only.
	Keyboard  Keyboard  `json:"keyboard"`  // Best mark seen per letter.
	Outcome   Outcome   `json:"outcome"`   // playing | won | lost
	CreatedAt time.Time `json:"createdAt"` // When the session started.
}
