// Package stats tracks per-player win/loss counters.
package stats

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats is a player's lifetime record.
type Stats struct {
	Played    int `json:"gamesPlayed"`
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	Streak    int `json:"streak"`
	MaxStreak int `json:"maxStreak"`
}

// Record counts one finished game.
func (s *Stats) Record(won bool) {
	s.Played++
	if won {
		s.Wins++
		s.Streak++
		if s.Streak > s.MaxStreak {
			s.MaxStreak = s.Streak
		}
		return
	}
	s.Losses++
	s.Streak = 0
}

// WinPercent is the share of played games won, rounded down; 0 before any game.
func (s Stats) WinPercent() int {
	if s.Played == 0 {
		return 0
	}
	return s.Wins * 100 / s.Played
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Load reads the stats columns of a user row.
func Load(ctx context.Context, q Querier, userID string) (Stats, error) {
	var s Stats
	err := q.QueryRowContext(ctx,
		`SELECT games_played, wins, losses, streak, max_streak FROM users WHERE id=?`, userID,
	).Scan(&s.Played, &s.Wins, &s.Losses, &s.Streak, &s.MaxStreak)
	if err != nil {
		return Stats{}, fmt.Errorf("load stats %s: %w", userID, err)
	}
	return s, nil
}

// Bump records a finished game for userID. Run it inside the transaction
// that marks the game finished so the two stay consistent.
func Bump(ctx context.Context, q Querier, userID string, won bool) (Stats, error) {
	s, err := Load(ctx, q, userID)
	if err != nil {
		return Stats{}, err
	}
	s.Record(won)
	_, err = q.ExecContext(ctx,
		`UPDATE users SET games_played=?, wins=?, losses=?, streak=?, max_streak=? WHERE id=?`,
		s.Played, s.Wins, s.Losses, s.Streak, s.MaxStreak, userID,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("update stats %s: %w", userID, err)
	}
	return s, nil
}
