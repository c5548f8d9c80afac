// internal/httpserver/routes_game.go
//
// HTTP routes for classic (unlimited) games.
// Responsibilities:
//   - POST /game/new   → pick a random secret, store the game, record an owner row.
//   - POST /game/guess → apply a guess atomically through Store.Update.
//   - GET  /game/{id}  → return the board so a client can resume.
//   - Mirror progress into the games table and bump stats when a game finishes.
//
// Notes:
//   - Daily games share the game store but are only reachable through /daily,
//     so their results are always recorded.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/wordle/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle/internal/game"
	"github.com/robalobadob/wordle/apps/wordle/internal/stats"
	"github.com/robalobadob/wordle/apps/wordle/internal/store"
)

type newGameRes struct {
	GameID string `json:"gameId"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
}

// handleNewGame picks a secret, stores the game, and persists a DB "owner"
// row (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g := game.New(s.dict.PickSecret(s.rng))
	if err := s.store.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.GameStarted("classic")

	// The answer stays out of the DB until the game is over.
	now := s.opts.Now().UTC().Format(time.RFC3339)
	var err error
	if me := currentUser(r); me != nil {
		_, err = s.db.ExecContext(r.Context(), `INSERT INTO games (id, user_id, answer, started_at, status, guesses)
		                     VALUES (?,?,?,?,?,0)`, g.ID, me.ID, "", now, string(game.OutcomeUnresolved))
	} else {
		anon := s.ensureAnonID(w, r)
		_, err = s.db.ExecContext(r.Context(), `INSERT INTO games (id, anonymous_id, answer, started_at, status, guesses)
		                     VALUES (?,?,?,?,?,0)`, g.ID, anon, "", now, string(game.OutcomeUnresolved))
	}
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}

	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Rows: game.MaxGuesses, Cols: game.WordLength})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Marks    game.Marks    `json:"marks"`
	State    game.Outcome  `json:"state"`
	Keyboard game.Keyboard `json:"keyboard"`
	Guesses  int           `json:"guesses"`
	Answer   string        `json:"answer,omitempty"`
}

// guessStatus maps a rejected guess to its HTTP status and error code.
// A rejected guess never consumes a row.
func guessStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrNotInDictionary):
		return http.StatusUnprocessableEntity, "not_in_word_list"
	case errors.Is(err, game.ErrInvalidLength), errors.Is(err, game.ErrInvalidGuess):
		return http.StatusBadRequest, "invalid_guess"
	case errors.Is(err, game.ErrGameFinished):
		return http.StatusConflict, "game_finished"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}

// guessMetric is the result label recorded for a submitted guess.
func guessMetric(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, game.ErrNotInDictionary):
		return "not_in_word_list"
	default:
		return "invalid"
	}
}

// handleGuess applies a guess atomically in the store, persists progress,
// and (if finished) updates user stats in the same transaction.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if daily.IsGameID(req.GameID) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	var (
		row  game.Row
		snap *game.Game
	)
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		var err error
		row, _, err = g.ApplyGuess(s.dict, req.Guess)
		if err != nil {
			return err
		}
		snap = g.Clone()
		return nil
	})
	if !errors.Is(err, store.ErrNotFound) {
		s.metrics.Guess(guessMetric(err))
	}
	if err != nil {
		status, code := guessStatus(err)
		if status == http.StatusInternalServerError {
			hlog.FromRequest(r).Error().Err(err).Str("gameId", req.GameID).Msg("apply guess")
		}
		writeError(w, status, code)
		return
	}

	s.persistGuess(w, r, snap)

	res := guessRes{
		Marks:    row.Marks,
		State:    snap.Outcome,
		Keyboard: snap.Keyboard,
		Guesses:  snap.Guesses(),
	}
	if snap.Outcome.Finished() {
		res.Answer = snap.Answer
	}
	writeJSON(w, http.StatusOK, res)
}

// persistGuess mirrors progress into the games table. Failures are logged, not returned.
func (s *Server) persistGuess(w http.ResponseWriter, r *http.Request, g *game.Game) {
	log := hlog.FromRequest(r)
	me := currentUser(r)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(r.Context(), `UPDATE games SET guesses=? WHERE id=? AND `+ownerClause,
		g.Guesses(), g.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}

	if g.Outcome.Finished() {
		s.metrics.GameFinished(string(g.Outcome), g.Guesses())
		res, err := tx.ExecContext(r.Context(), `UPDATE games SET status=?, answer=?, finished_at=? WHERE id=? AND `+ownerClause,
			string(g.Outcome), g.Answer, s.opts.Now().UTC().Format(time.RFC3339), g.ID, ownerArg)
		var owned int64
		if err != nil {
			log.Warn().Err(err).Msg("finish game")
		} else {
			owned, _ = res.RowsAffected()
		}
		// Only bump stats when this request's owner actually owns the row.
		if me != nil && owned > 0 {
			if _, err := stats.Bump(r.Context(), tx, me.ID, g.Outcome == game.OutcomeWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit guess")
	}
}

// gameView is the public shape of a game; the answer is only shown once it is over.
type gameView struct {
	ID         string        `json:"id"`
	Rows       []game.Row    `json:"rows"`
	Keyboard   game.Keyboard `json:"keyboard"`
	State      game.Outcome  `json:"state"`
	Guesses    int           `json:"guesses"`
	MaxGuesses int           `json:"maxGuesses"`
	Answer     string        `json:"answer,omitempty"`
}

func viewOf(g *game.Game) gameView {
	v := gameView{
		ID:         g.ID,
		Rows:       g.Rows,
		Keyboard:   g.Keyboard,
		State:      g.Outcome,
		Guesses:    g.Guesses(),
		MaxGuesses: game.MaxGuesses,
	}
	if v.Rows == nil {
		v.Rows = []game.Row{}
	}
	if g.Outcome.Finished() {
		v.Answer = g.Answer
	}
	return v
}

// handleGetGame returns the board so a client can resume.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if daily.IsGameID(id) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		status, code := guessStatus(err)
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(g))
}
