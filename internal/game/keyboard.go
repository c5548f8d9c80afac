// internal/game/keyboard.go
//
// On-screen keyboard state.
// Responsibilities:
//   - Hold the best mark seen for each letter A..Z.
//   - Fold a scored row into the keyboard; a key never downgrades.
//   - Encode as a {"A": "correct", ...} JSON object of the keys seen so far.
package game

import (
	"encoding/json"
	"fmt"
)

// Keyboard is the best Mark seen so far for each letter A..Z.
// The zero value has every key MarkUnseen.
type Keyboard [26]Mark

// Get returns the mark for letter (either case). Non-letters report MarkUnseen.
func (k Keyboard) Get(letter byte) Mark {
	if i := letterIndex(letter); i >= 0 {
		return k[i]
	}
	return MarkUnseen
}

// UpdateKeyboard folds one classified row into k and returns the result.
// A key only moves up the order Unseen < Absent < Present < Correct, so
// applying the same row twice is a no-op and a later Absent never hides
// an earlier Correct.
func UpdateKeyboard(k Keyboard, row Row) Keyboard {
	for i := 0; i < len(row.Word) && i < WordLength; i++ {
		j := letterIndex(row.Word[i])
		if j < 0 {
			continue
		}
		if m := row.Marks[i]; m > k[j] {
			k[j] = m
		}
	}
	return k
}

// MarshalJSON encodes only the keys that have been seen, as {"A":"correct",...}.
func (k Keyboard) MarshalJSON() ([]byte, error) {
	out := make(map[string]Mark, len(k))
	for i, m := range k {
		if m != MarkUnseen {
			out[string(rune('A'+i))] = m
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (k *Keyboard) UnmarshalJSON(b []byte) error {
	var in map[string]Mark
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*k = Keyboard{}
	for key, m := range in {
		if len(key) != 1 || letterIndex(key[0]) < 0 {
			return fmt.Errorf("game: invalid keyboard key %q", key)
		}
		k[letterIndex(key[0])] = m
	}
	return nil
}

// letterIndex maps an ASCII letter of either case to 0..25, or -1.
func letterIndex(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	}
	return -1
}
