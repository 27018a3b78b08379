// Package metrics exposes session statistics in the Prometheus format.
//
// Labels are bounded: enemy kind is "basic" or "boss", nothing per player.
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomz197/forestshooter/internal/loop"
	"github.com/tomz197/forestshooter/internal/object"
)

// Metrics holds the collectors. It implements loop.Observer and may be shared
// by every session of a process.
type Metrics struct {
	gatherer prometheus.Gatherer

	enemiesSpawned   *prometheus.CounterVec
	enemiesKilled    *prometheus.CounterVec
	pointsScored     prometheus.Counter
	ticks            prometheus.Counter
	tickDuration     prometheus.Histogram
	particles        prometheus.Histogram
	sessionsActive   prometheus.Gauge
	sessionsEnded    prometheus.Counter
	sessionsRejected prometheus.Counter
	bossDefeats      prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return NewWith(reg, reg)
}

// NewWith registers the collectors on reg and serves them from g.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: g,
		enemiesSpawned: f.NewCounterVec(prometheus.CounterOpts{
			Name: "forest_enemies_spawned_total",
			Help: "Enemies spawned",
		}, []string{"kind"}),
		enemiesKilled: f.NewCounterVec(prometheus.CounterOpts{
			Name: "forest_enemies_killed_total",
			Help: "Enemies destroyed by projectiles",
		}, []string{"kind"}),
		pointsScored: f.NewCounter(prometheus.CounterOpts{
			Name: "forest_points_scored_total",
			Help: "Points awarded across all sessions",
		}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "forest_ticks_total",
			Help: "Simulation ticks run",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "forest_tick_duration_seconds",
			Help:    "Time spent in a tick, rendering included",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0167, 0.033},
		}),
		particles: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "forest_tick_particles",
			Help:    "Live particles at the end of a tick",
			Buckets: []float64{0, 10, 25, 50, 100, 200, 400},
		}),
		sessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "forest_sessions_active",
			Help: "Sessions currently connected",
		}),
		sessionsEnded: f.NewCounter(prometheus.CounterOpts{
			Name: "forest_sessions_ended_total",
			Help: "Sessions whose end condition fired",
		}),
		sessionsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "forest_sessions_rejected_total",
			Help: "Connections refused by the session limiter",
		}),
		bossDefeats: f.NewCounter(prometheus.CounterOpts{
			Name: "forest_boss_defeats_total",
			Help: "Sessions in which the boss was defeated",
		}),
	}
}

// EnemySpawned implements loop.Observer.
func (m *Metrics) EnemySpawned(kind object.EnemyKind) {
	m.enemiesSpawned.WithLabelValues(kind.String()).Inc()
}

// EnemyKilled implements loop.Observer. A boss kill also counts as a boss defeat.
func (m *Metrics) EnemyKilled(kind object.EnemyKind, points int) {
	m.enemiesKilled.WithLabelValues(kind.String()).Inc()
	m.pointsScored.Add(float64(points))
	if kind == object.EnemyBoss {
		m.bossDefeats.Inc()
	}
}

// TickCompleted implements loop.Observer.
func (m *Metrics) TickCompleted(d time.Duration, stats loop.Stats) {
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
	m.particles.Observe(float64(stats.Particles))
}

// SessionEnded implements loop.Observer.
func (m *Metrics) SessionEnded(loop.Result) {
	m.sessionsEnded.Inc()
}

// SessionOpened marks a connected session. Call the returned func when it closes.
func (m *Metrics) SessionOpened() (closed func()) {
	m.sessionsActive.Inc()
	return m.sessionsActive.Dec
}

// SessionRejected counts a refused connection.
func (m *Metrics) SessionRejected() {
	m.sessionsRejected.Inc()
}

var _ loop.Observer = (*Metrics)(nil)

// Router serves /metrics and /healthz.
func (m *Metrics) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
	return r
}
