package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const janitorJob = "token_janitor"

// ExpiredPurger deletes rows whose expiry is before now and reports how many.
type ExpiredPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Cleaner interface {
	Cleanup()
}

type Recorder interface {
	RecordJob(job string, success bool)
	RecordPurged(table string, n int64)
}

// Janitor periodically removes expired refresh and reset tokens and drops
// idle rate-limiter entries.
type Janitor struct {
	purgers  map[string]ExpiredPurger
	cleaners []Cleaner
	metrics  Recorder
	log      *zap.Logger
	now      func() time.Time
	timeout  time.Duration
	cron     *cron.Cron
}

func NewJanitor(purgers map[string]ExpiredPurger, cleaners []Cleaner, metrics Recorder, log *zap.Logger) *Janitor {
	return &Janitor{
		purgers:  purgers,
		cleaners: cleaners,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
		timeout:  time.Minute,
	}
}

// Run performs one sweep. Every table is attempted; the first error is returned.
func (j *Janitor) Run(ctx context.Context) error {
	now := j.now()
	var firstErr error

	for table, p := range j.purgers {
		n, err := p.DeleteExpired(ctx, now)
		if err != nil {
			j.log.Error("failed to purge expired rows", zap.String("table", table), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to purge %s: %w", table, err)
			}
			continue
		}
		if j.metrics != nil {
			j.metrics.RecordPurged(table, n)
		}
		if n > 0 {
			j.log.Info("purged expired rows", zap.String("table", table), zap.Int64("rows", n))
		}
	}

	for _, c := range j.cleaners {
		c.Cleanup()
	}

	if j.metrics != nil {
		j.metrics.RecordJob(janitorJob, firstErr == nil)
	}
	return firstErr
}

// Start schedules Run on spec (standard cron syntax or descriptors such as
// "@hourly").
func (j *Janitor) Start(spec string) error {
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{j.log})))
	if _, err := c.AddFunc(spec, j.tick); err != nil {
		return fmt.Errorf("invalid janitor schedule %q: %w", spec, err)
	}
	j.cron = c
	c.Start()
	j.log.Info("janitor scheduled", zap.String("schedule", spec))
	return nil
}

func (j *Janitor) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	_ = j.Run(ctx)
}

// Stop waits for a running sweep to finish or for ctx to expire.
func (j *Janitor) Stop(ctx context.Context) {
	if j.cron == nil {
		return
	}
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.log.Warn("janitor did not stop in time")
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
