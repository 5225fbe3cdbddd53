package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/cumpas/cumpas-sync/internal/metrics"
)

// HabitRoller resets habits whose day has passed.
type HabitRoller interface {
	RolloverHabits(ctx context.Context) (int, error)
}

// Scheduler runs the daily habit rollover on a cron schedule.
type Scheduler struct {
	habits  HabitRoller
	cron    *cron.Cron
	timeout time.Duration
}

// NewScheduler creates a scheduler that calls habits.RolloverHabits on
// spec, a standard five-field cron expression evaluated in loc.
func NewScheduler(habits HabitRoller, spec string, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		habits:  habits,
		cron:    cron.New(cron.WithLocation(loc)),
		timeout: 5 * time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.runRollover); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return s, nil
}

// Run starts the scheduler in its own goroutine.
func (s *Scheduler) Run() {
	log.Info().Msg("Starting habit rollover scheduler...")
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped habit rollover scheduler.")
}

func (s *Scheduler) runRollover() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.habits.RolloverHabits(ctx)
	metrics.RecordHabitRollover(n, err)
	if err != nil {
		log.Error().Err(err).Msg("Habit rollover failed")
		return
	}
	log.Info().Int("updated", n).Dur("took", time.Since(start)).Msg("Habit rollover finished")
}
