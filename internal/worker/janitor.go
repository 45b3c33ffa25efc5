package worker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"cricsaga/internal/app"
)

// Janitor periodically removes matches that have gone quiet. It is optional;
// with no janitor running, abandoned matches simply stay in the directory.
type Janitor struct {
	engine    *app.Engine
	interval  time.Duration
	ttl       time.Duration
	log       zerolog.Logger
	scheduler gocron.Scheduler
}

func NewJanitor(engine *app.Engine, interval, ttl time.Duration, log zerolog.Logger) *Janitor {
	return &Janitor{
		engine:   engine,
		interval: interval,
		ttl:      ttl,
		log:      log,
	}
}

// Start schedules the sweep and runs it until Stop is called.
func (j *Janitor) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return eris.Wrap(err, "failed to create scheduler")
	}

	_, err = sched.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(func() { j.sweep(ctx) }),
	)
	if err != nil {
		return eris.Wrap(err, "failed to schedule idle sweep")
	}

	sched.Start()
	j.scheduler = sched
	j.log.Info().Dur("interval", j.interval).Dur("ttl", j.ttl).Msg("janitor started")
	return nil
}

func (j *Janitor) sweep(ctx context.Context) {
	removed, err := j.engine.SweepIdle(ctx, j.ttl)
	if err != nil {
		j.log.Error().Err(err).Msg("idle sweep failed")
		return
	}
	if removed > 0 {
		j.log.Info().Int("removed", removed).Msg("swept idle matches")
	}
}

func (j *Janitor) Stop() error {
	if j.scheduler == nil {
		return nil
	}
	return j.scheduler.Shutdown()
}
