// Package metrics exposes solver activity to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors served on /metrics.
type Metrics struct {
	reg *prometheus.Registry

	SessionsStarted  prometheus.Counter
	SessionsFinished *prometheus.CounterVec // outcome: solved|failed
	Feedback         *prometheus.CounterVec // result: ok|malformed|unknown_guess|no_candidates
	Remaining        prometheus.Histogram   // candidates left after each filter
	GamesPlayed      *prometheus.CounterVec // state: won|lost
	ActiveSessions   prometheus.GaugeFunc
}

// New registers every collector on a private registry. activeSessions is
// sampled on each scrape.
func New(activeSessions func() float64) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		reg: reg,
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wordle_solver_sessions_started_total",
			Help: "Solver sessions created.",
		}),
		SessionsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_solver_sessions_finished_total",
			Help: "Solver sessions finished by outcome.",
		}, []string{"outcome"}),
		Feedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_solver_feedback_total",
			Help: "Feedback submissions by result.",
		}, []string{"result"}),
		Remaining: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordle_solver_remaining_candidates",
			Help:    "Candidates left after applying feedback.",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100, 250, 1000},
		}),
		GamesPlayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_games_finished_total",
			Help: "Playable games finished by state.",
		}, []string{"state"}),
	}
	if activeSessions == nil {
		activeSessions = func() float64 { return 0 }
	}
	m.ActiveSessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wordle_solver_active_sessions",
		Help: "Sessions currently held in memory.",
	}, activeSessions)

	reg.MustRegister(m.SessionsStarted, m.SessionsFinished, m.Feedback, m.Remaining, m.GamesPlayed, m.ActiveSessions)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
