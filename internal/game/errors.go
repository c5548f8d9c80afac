// internal/game/errors.go
//
// Sentinel errors for rejected guesses.
// Callers match them with errors.Is; a rejected guess never consumes a row.
package game

import "errors"

// Game errors
var (
	ErrInvalidLength   = errors.New("word must be exactly 5 letters")
	ErrInvalidGuess    = errors.New("guess must contain only letters A-Z")
	ErrNotInDictionary = errors.New("not a valid word")
	ErrGameFinished    = errors.New("game finished")
)
