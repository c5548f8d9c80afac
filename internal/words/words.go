// internal/words/words.go
//
// Provides the dictionary used by the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//   - Validate guesses (IsValid) and pick secret words (PickSecret).
//
// Word Lists:
//   - "answers": canonical solutions.
//   - "allowed": valid guesses (always includes answers).
//
// Loading behavior (Load):
//  1. If both answersPath and allowedPath are set,
//     load answers from the first and allowed guesses from the second.
//  2. If only allowedPath is set,
//     load that file and use it for both answers and allowed guesses.
//  3. If neither is set, use the embedded lists from package assets.
//
// Constraints:
//   - Words must be 5 letters A–Z; anything else is skipped on load.
//   - Words are stored uppercase; lookups are case-insensitive.
//   - A Dictionary is immutable once built and safe for concurrent use.
package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle/assets"
)

// WordLength is the length of every accepted word.
const WordLength = 5

// ErrNoAnswers is returned when the answer list is empty after filtering.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Source is the randomness used to pick secret words.
// *math/rand.Rand satisfies it; CryptoSource is the production default.
type Source interface {
	Intn(n int) int
}

// Dictionary is an immutable set of accepted words plus the answer list.
type Dictionary struct {
	answers    []string            // canonical answers, load order
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
}

// New builds a Dictionary from raw lists. Entries are trimmed and
// uppercased; entries that are not 5 letters are dropped.
func New(answers, allowed []string) (*Dictionary, error) {
	ans := normalize(answers)
	if len(ans) == 0 {
		return nil, ErrNoAnswers
	}
	d := &Dictionary{
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	for _, w := range normalize(allowed) {
		d.allowedSet[w] = struct{}{}
	}
	return d, nil
}

// Load builds a Dictionary following the rules in the package comment.
func Load(answersPath, allowedPath string) (*Dictionary, error) {
	switch {
	case answersPath != "" && allowedPath != "":
		ans, err := readWordFile(answersPath)
		if err != nil {
			return nil, err
		}
		allow, err := readWordFile(allowedPath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("answers", answersPath).Str("allowed", allowedPath).Msg("word lists from files")
		return New(ans, allow)

	case allowedPath != "":
		allow, err := readWordFile(allowedPath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("allowed", allowedPath).Msg("single word list from file")
		return New(allow, allow)

	default:
		return Default()
	}
}

// Default builds a Dictionary from the embedded lists.
func Default() (*Dictionary, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, fmt.Errorf("embedded answers: %w", err)
	}
	allow, err := assets.AllowedList()
	if err != nil {
		return nil, fmt.Errorf("embedded allowed: %w", err)
	}
	return New(ans, allow)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// normalize uppercases and trims, keeping only valid words (first occurrence wins).
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) != WordLength || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// IsValid reports whether w is an accepted guess (answers ∪ guesses), ignoring case.
func (d *Dictionary) IsValid(w string) bool {
	_, ok := d.allowedSet[strings.ToUpper(strings.TrimSpace(w))]
	return ok
}

// IsAnswer reports whether w is an answer word, ignoring case.
func (d *Dictionary) IsAnswer(w string) bool {
	_, ok := d.answersSet[strings.ToUpper(strings.TrimSpace(w))]
	return ok
}

// PickSecret returns an answer chosen uniformly with rng.
func (d *Dictionary) PickSecret(rng Source) string {
	return d.answers[rng.Intn(len(d.answers))]
}

// Answer returns the answer at index i modulo the list length. Used by the
// daily challenge, which derives its index from the date.
func (d *Dictionary) Answer(i int) string {
	n := len(d.answers)
	return d.answers[((i%n)+n)%n]
}

// Answers returns a copy of the answer list.
func (d *Dictionary) Answers() []string {
	return append([]string(nil), d.answers...)
}

// Stats returns counts of loaded words: (answers, allowed).
func (d *Dictionary) Stats() (answersCount int, allowedCount int) {
	return len(d.answers), len(d.allowedSet)
}

type cryptoSource struct{}

// CryptoSource returns a Source backed by crypto/rand.
func CryptoSource() Source { return cryptoSource{} }

func (cryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("words: crypto/rand: %v", err))
	}
	return int(v.Int64())
}
