// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's daily game (creates or resumes it)
//   - POST /daily/guess       → submit a guess for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 wins for today (or a given date)
//
// Each player can play once per day:
//   - The game lives in the shared game store under daily.GameID(player, date), so a
//     restart or another replica resumes it instead of starting over.
//   - Finishing (won or lost) writes a daily_results row, and /daily/new refuses
//     a new game once that row exists.
// Deterministic word selection is based on date + salt.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/wordle/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle/internal/game"
	"github.com/robalobadob/wordle/apps/wordle/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Post("/guess", s.handleDailyGuess)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

func (s *Server) today() daily.Puzzle {
	return daily.Today(s.dict, s.opts.Now(), s.opts.DailySalt)
}

// recordDaily writes the finished game to daily_results. Repeats are ignored by the store.
func (s *Server) recordDaily(r *http.Request, playerID string, p daily.Puzzle, g *game.Game) {
	s.metrics.GameFinished(string(g.Outcome), g.Guesses())
	err := s.daily.InsertResult(r.Context(), daily.Result{
		UserID:    playerID,
		Date:      p.Date,
		WordIndex: p.Index,
		Outcome:   g.Outcome,
		Guesses:   g.Guesses(),
		ElapsedMs: int(s.opts.Now().Sub(g.CreatedAt).Milliseconds()),
	})
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("player", playerID).Msg("insert daily result")
	}
}

// -----------------------------------------------------------------------------
// /daily/new

// newRes is returned by /daily/new.
type newRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleDailyNew creates or resumes the player's game for today.
// - If the player already has a result for today → Played=true, no game.
// - Otherwise the stored game is returned, or a new one is inserted.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	uid := s.playerID(w, r)
	p := s.today()

	played, err := s.daily.AlreadyPlayed(r.Context(), uid, p.Date)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("check daily played")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, newRes{Date: p.Date, Played: true})
		return
	}

	g := game.New(p.Answer)
	g.ID = daily.GameID(uid, p.Date)
	g.CreatedAt = s.opts.Now().UTC()

	err = s.store.Insert(r.Context(), g)
	switch {
	case err == nil:
		s.metrics.GameStarted("daily")
	case errors.Is(err, store.ErrExists):
		if g, err = s.store.Get(r.Context(), g.ID); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("load daily game")
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}
		// Finished but unrecorded (the result write failed earlier): record it now.
		if g.Outcome.Finished() {
			s.recordDaily(r, uid, p, g)
			writeJSON(w, http.StatusOK, newRes{Date: p.Date, Played: true})
			return
		}
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("save daily game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	writeJSON(w, http.StatusOK, newRes{GameID: g.ID, Date: p.Date})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Marks    *game.Marks   `json:"marks,omitempty"`
	State    string        `json:"state"` // playing | won | lost | locked
	Guesses  int           `json:"guesses"`
	Keyboard game.Keyboard `json:"keyboard"`
}

// handleDailyGuess validates and applies a guess to today's game.
// A finished game answers "locked"; finishing records the result.
func (s *Server) handleDailyGuess(w http.ResponseWriter, r *http.Request) {
	uid := s.playerID(w, r)

	var req dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}

	p := s.today()
	id := daily.GameID(uid, p.Date)
	if req.GameID != id {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	var (
		row  game.Row
		snap *game.Game
	)
	err := s.store.Update(r.Context(), id, func(g *game.Game) error {
		var err error
		if row, _, err = g.ApplyGuess(s.dict, req.Word); err != nil {
			return err
		}
		snap = g.Clone()
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusConflict, "no_session")
		return
	case errors.Is(err, game.ErrGameFinished):
		g, err := s.store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusConflict, "no_session")
			return
		}
		writeJSON(w, http.StatusOK, dailyGuessRes{State: "locked", Guesses: g.Guesses(), Keyboard: g.Keyboard})
		return
	}

	s.metrics.Guess(guessMetric(err))
	if err != nil {
		status, code := guessStatus(err)
		if status == http.StatusInternalServerError {
			hlog.FromRequest(r).Error().Err(err).Msg("apply daily guess")
		}
		writeError(w, status, code)
		return
	}

	if snap.Outcome.Finished() {
		s.recordDaily(r, uid, p, snap)
	}
	writeJSON(w, http.StatusOK, dailyGuessRes{
		Marks:    &row.Marks,
		State:    string(snap.Outcome),
		Guesses:  snap.Guesses(),
		Keyboard: snap.Keyboard,
	})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.today().Date
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
