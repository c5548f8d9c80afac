// Package metrics holds the Prometheus collectors for game activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the game collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer      prometheus.Gatherer
	gamesStarted  *prometheus.CounterVec
	guesses       *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	guessesToWin  prometheus.Histogram
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		gamesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_games_started_total",
				Help: "Games started, by mode.",
			},
			[]string{"mode"},
		),
		guesses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_guesses_total",
				Help: "Submitted guesses, by result (accepted, not_in_word_list, invalid).",
			},
			[]string{"result"},
		),
		gamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_games_finished_total",
				Help: "Finished games, by outcome.",
			},
			[]string{"outcome"},
		),
		guessesToWin: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordle_guesses_to_win",
			Help:    "Rows used in won games.",
			Buckets: prometheus.LinearBuckets(1, 1, 6),
		}),
	}
	reg.MustRegister(m.gamesStarted, m.guesses, m.gamesFinished, m.guessesToWin)
	return m
}

// GameStarted counts a new game in mode ("classic" or "daily").
func (m *Metrics) GameStarted(mode string) {
	if m == nil {
		return
	}
	m.gamesStarted.WithLabelValues(mode).Inc()
}

// Guess counts one submitted guess.
func (m *Metrics) Guess(result string) {
	if m == nil {
		return
	}
	m.guesses.WithLabelValues(result).Inc()
}

// GameFinished counts a finished game; rows is how many guesses it took.
func (m *Metrics) GameFinished(outcome string, rows int) {
	if m == nil {
		return
	}
	m.gamesFinished.WithLabelValues(outcome).Inc()
	if outcome == "won" {
		m.guessesToWin.Observe(float64(rows))
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
