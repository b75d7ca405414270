// Package reslug regenerates a record slug from its title while keeping slugs
// unique per resource.
package reslug

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/internal/metrics"
	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/sitemap"
	"github.com/goliatone/go-seo/internal/slug"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// DefaultMaxAttempts bounds the candidates tried per reassignment.
const DefaultMaxAttempts = 25

var (
	ErrAttemptsExhausted = errors.New("reslug: no free slug within max attempts")
	ErrMissingID         = errors.New("reslug: record id required")
)

// Result reports the slug assigned to a record.
type Result struct {
	Type     resources.Type
	ID       string
	Slug     string
	Attempts int
}

// Service assigns unique slugs derived from titles.
type Service struct {
	store       records.Store
	registry    *resources.Registry
	maxAttempts int
	logger      interfaces.Logger
	metrics     metrics.Recorder
	sitemaps    DocumentRefresher
}

// DocumentRefresher regenerates a cached sitemap document.
type DocumentRefresher interface {
	RefreshDocument(ctx context.Context, name string) ([]byte, error)
}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts sets the candidate limit. Non-positive values keep the default.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		s.logger = logging.Ensure(logger)
	}
}

// WithMetrics sets the attempt recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = metrics.Ensure(recorder)
	}
}

// WithSitemapRefresher regenerates the resource sitemap after every slug write.
func WithSitemapRefresher(refresher DocumentRefresher) Option {
	return func(s *Service) {
		s.sitemaps = refresher
	}
}

// NewService builds a reassignment service over store.
func NewService(store records.Store, registry *resources.Registry, opts ...Option) *Service {
	if registry == nil {
		registry = resources.DefaultRegistry()
	}
	s := &Service{
		store:       store,
		registry:    registry,
		maxAttempts: DefaultMaxAttempts,
		logger:      logging.NoOp(),
		metrics:     metrics.Nop{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// MaxAttempts returns the configured candidate limit.
func (s *Service) MaxAttempts() int {
	return s.maxAttempts
}

// Reassign derives a slug from title and stores the first free candidate:
// base, base-2, base-3 and so on. A title with no slug characters clears the
// slug so the record falls back to its identifier.
//
// The free check and the write are separate calls; a conflicting write from a
// concurrent edit surfaces as records.ErrSlugConflict and the next candidate
// is tried.
func (s *Service) Reassign(ctx context.Context, t resources.Type, id, title string) (Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Result{}, ErrMissingID
	}
	def, err := s.registry.Lookup(t)
	if err != nil {
		return Result{}, err
	}
	logger := logging.WithLookup(s.logger.WithContext(ctx), string(t), "", id)
	result := Result{Type: t, ID: id}

	base := slug.Normalize(title)
	if base == "" {
		if err := s.store.AssignSlug(ctx, def, id, ""); err != nil {
			return result, s.fail(logger, def, 0, err)
		}
		logger.Info("reslug.cleared")
		s.metrics.ObserveSlugReassignment(string(t), metrics.OutcomeOK, 0)
		s.refreshSitemap(ctx, logger, def)
		return result, nil
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return result, s.fail(logger, def, attempt-1, err)
		}
		candidate := slug.WithSuffix(base, attempt)
		taken, err := s.store.SlugTaken(ctx, def, candidate, id)
		if err != nil {
			return result, s.fail(logger, def, attempt, err)
		}
		if taken {
			continue
		}
		err = s.store.AssignSlug(ctx, def, id, candidate)
		if errors.Is(err, records.ErrSlugConflict) {
			logger.Debug("reslug.conflict", "candidate", candidate)
			continue
		}
		if err != nil {
			return result, s.fail(logger, def, attempt, err)
		}
		result.Slug = candidate
		result.Attempts = attempt
		s.metrics.ObserveSlugReassignment(string(t), metrics.OutcomeOK, attempt)
		logger.Info("reslug.assigned", "slug", candidate, "attempts", attempt)
		s.refreshSitemap(ctx, logger, def)
		return result, nil
	}

	s.metrics.ObserveSlugReassignment(string(t), metrics.OutcomeError, s.maxAttempts)
	logger.Warn("reslug.exhausted", "base", base, "attempts", s.maxAttempts)
	return result, fmt.Errorf("%w: %s after %d candidates", ErrAttemptsExhausted, base, s.maxAttempts)
}

// refreshSitemap keeps the cached sitemap in line with the new slug. The slug
// is already stored, so a failed refresh is only logged.
func (s *Service) refreshSitemap(ctx context.Context, logger interfaces.Logger, def resources.Definition) {
	if s.sitemaps == nil || def.SitemapName == "" {
		return
	}
	name := sitemap.DocumentName(def)
	if _, err := s.sitemaps.RefreshDocument(ctx, name); err != nil {
		logger.Warn("reslug.sitemap_refresh_failed", "document", name, "error", err)
	}
}

func (s *Service) fail(logger interfaces.Logger, def resources.Definition, attempts int, err error) error {
	s.metrics.ObserveSlugReassignment(string(def.Type), metrics.OutcomeError, attempts)
	logger.Error("reslug.failed", "error", err)
	return err
}
