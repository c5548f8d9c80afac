// internal/daily/daily.go
//
// Daily challenge puzzle selection.
// Responsibilities:
//   - Map a UTC day to a deterministic answer: HMAC-SHA256(salt, YYYY-MM-DD) mod len(answers).
//   - Derive the stable game ID of one player's daily game, so every replica and
//     every restart resolves the same session from the game store.
//
// Notes:
//   - Without a secret salt the daily word is predictable from the answer list.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/wordle/internal/words"
)

// gamePrefix marks daily game IDs so classic routes can refuse them.
const gamePrefix = "daily-"

// gameNamespace scopes the name-based UUIDs of daily games.
var gameNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("wordle:daily"))

// Puzzle is one day's challenge.
type Puzzle struct {
	Date   string // YYYY-MM-DD, UTC
	Index  int    // position in the answer list
	Answer string
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns the answer index for the UTC day of t; 0 when n <= 0.
func WordIndex(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(t)))
	sum := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Today returns the puzzle of dict for the UTC day of t.
func Today(dict *words.Dictionary, t time.Time, salt string) Puzzle {
	n, _ := dict.Stats()
	i := WordIndex(t, salt, n)
	return Puzzle{Date: DateKey(t), Index: i, Answer: dict.Answer(i)}
}

// GameID is the store key of playerID's game for date.
func GameID(playerID, date string) string {
	return gamePrefix + uuid.NewSHA1(gameNamespace, []byte(playerID+"|"+date)).String()
}

// IsGameID reports whether id belongs to a daily game.
func IsGameID(id string) bool {
	return strings.HasPrefix(id, gamePrefix)
}
