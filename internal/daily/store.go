// internal/daily/store.go
//
// SQLite persistence for finished daily games.
// Responsibilities:
//   - One row per player per day (UNIQUE(user_id, date)), won or lost.
//   - AlreadyPlayed gates /daily/new; Leaderboard ranks wins only.

package daily

import (
	"context"
	"database/sql"

	"github.com/robalobadob/wordle/apps/wordle/internal/game"
)

// Result is one player's finished daily game.
type Result struct {
	UserID    string       `json:"userId"`
	Date      string       `json:"date"`
	WordIndex int          `json:"wordIndex"`
	Outcome   game.Outcome `json:"outcome"`
	Guesses   int          `json:"guesses"`
	ElapsedMs int          `json:"elapsedMs"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store persists daily results in SQLite.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID finished the puzzle of date, won or lost.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r. A second result for the same user and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	if r.Outcome == "" {
		r.Outcome = game.OutcomeWon
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, word_index, outcome, guesses, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`, r.UserID, r.Date, r.WordIndex, string(r.Outcome), r.Guesses, r.ElapsedMs,
	)
	return err
}

// Leaderboard returns the fastest wins for date: elapsed time, then
// guesses, then who finished first. limit <= 0 means 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, guesses, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND outcome='won'
		 ORDER BY elapsed_ms ASC, guesses ASC, created_at ASC, rowid ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
