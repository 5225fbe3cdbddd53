package monitoring

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/cumpas/cumpas-sync/internal/metrics"
)

// trackedTables are the tables whose row counts are exported as metrics.
var trackedTables = []string{
	"users", "habits", "finance_transactions", "study_notes", "study_tasks",
	"goals", "classes", "attendance", "pomodoro_sessions", "quick_notes", "events",
}

// StatUpdater periodically exports store row counts to Prometheus.
type StatUpdater struct {
	db       *sqlx.DB
	interval time.Duration
	done     chan struct{}
	stopped  chan struct{}
}

// NewStatUpdater creates a new StatUpdater.
func NewStatUpdater(db *sqlx.DB, interval time.Duration) *StatUpdater {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatUpdater{
		db:       db,
		interval: interval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Run starts the periodic updates. It blocks until Stop is called.
func (su *StatUpdater) Run() {
	defer close(su.stopped)
	log.Info().Dur("interval", su.interval).Msg("Starting background stat updater...")
	ticker := time.NewTicker(su.interval)
	defer ticker.Stop()

	// Run once immediately on start
	su.UpdateAll(context.Background())

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-ticker.C:
			su.UpdateAll(context.Background())
		}
	}
}

// Stop halts the updater and waits for Run to return.
func (su *StatUpdater) Stop() {
	close(su.done)
	<-su.stopped
}

// UpdateAll refreshes every tracked table's row count.
func (su *StatUpdater) UpdateAll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, table := range trackedTables {
		var n int
		if err := su.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
			log.Warn().Err(err).Str("table", table).Msg("Failed to count rows")
			continue
		}
		metrics.SetTableRows(table, n)
	}
}
