package sitemap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// DefaultSchedule regenerates documents once an hour.
const DefaultSchedule = "@hourly"

const defaultRefreshTimeout = 2 * time.Minute

// Refresher regenerates cached documents.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// Warmer runs a Refresher on a cron schedule.
type Warmer struct {
	cron      *cron.Cron
	parser    cron.Parser
	refresher Refresher
	schedule  string
	timeout   time.Duration
	logger    interfaces.Logger
}

// WarmerOption configures a Warmer.
type WarmerOption func(*Warmer)

// WithWarmerLogger sets the warmer logger.
func WithWarmerLogger(logger interfaces.Logger) WarmerOption {
	return func(w *Warmer) {
		w.logger = logging.Ensure(logger)
	}
}

// WithRefreshTimeout bounds each scheduled run.
func WithRefreshTimeout(timeout time.Duration) WarmerOption {
	return func(w *Warmer) {
		if timeout > 0 {
			w.timeout = timeout
		}
	}
}

// NewWarmer validates schedule and registers the refresh job. Standard five
// field expressions and descriptors such as "@every 15m" are accepted.
func NewWarmer(refresher Refresher, schedule string, opts ...WarmerOption) (*Warmer, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		schedule = DefaultSchedule
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("sitemap: invalid warmer schedule %q: %w", schedule, err)
	}

	w := &Warmer{
		parser:    parser,
		refresher: refresher,
		schedule:  schedule,
		timeout:   defaultRefreshTimeout,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	w.cron = cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger), cron.Recover(cron.DefaultLogger)),
	)
	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return nil, fmt.Errorf("sitemap: schedule warmer: %w", err)
	}
	return w, nil
}

// Schedule returns the cron expression in use.
func (w *Warmer) Schedule() string {
	return w.schedule
}

// Next returns the next scheduled run after now.
func (w *Warmer) Next(now time.Time) time.Time {
	schedule, err := w.parser.Parse(w.schedule)
	if err != nil {
		return time.Time{}
	}
	return schedule.Next(now)
}

// Start runs the scheduler in the background.
func (w *Warmer) Start() {
	w.logger.Info("sitemap.warmer_started", "schedule", w.schedule)
	w.cron.Start()
}

// Stop halts the scheduler and waits for a running refresh or ctx.
func (w *Warmer) Stop(ctx context.Context) error {
	done := w.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce refreshes immediately.
func (w *Warmer) RunOnce(ctx context.Context) error {
	started := time.Now()
	count, err := w.refresher.Refresh(ctx)
	if err != nil {
		w.logger.Error("sitemap.warm_failed", "refreshed", count, "error", err)
		return err
	}
	w.logger.Info("sitemap.warmed", "refreshed", count, "elapsed", time.Since(started).String())
	return nil
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	_ = w.RunOnce(ctx)
}
