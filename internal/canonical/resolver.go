// Package canonical resolves inbound slug-or-id path segments to the canonical
// location of a record and decides between rendering, redirecting and not found.
package canonical

import (
	"context"
	"errors"

	"github.com/goliatone/go-seo/internal/identity"
	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/internal/metrics"
	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// ErrNotFound is returned for every unresolved lookup, including store
// failures, so callers cannot tell missing, unpublished and errored apart.
var ErrNotFound = errors.New("canonical: not found")

// Resolution is the canonical location computed for a record.
type Resolution struct {
	Type      resources.Type
	ID        string
	Slug      string
	Secondary string
	Path      string
	Record    *records.Record
}

// Segments returns the canonical segments of the resolution.
func (r *Resolution) Segments() resources.Segments {
	if r == nil {
		return resources.Segments{}
	}
	return resources.Segments{Primary: r.Slug, Secondary: r.Secondary}
}

// Resolver looks records up by slug first and by identifier on a miss.
type Resolver struct {
	store    records.Store
	registry *resources.Registry
	classify func(string) bool
	logger   interfaces.Logger
	metrics  metrics.Recorder
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records store failures.
func WithMetrics(recorder metrics.Recorder) ResolverOption {
	return func(r *Resolver) {
		r.metrics = metrics.Ensure(recorder)
	}
}

// WithIdentifierClassifier overrides the identifier check.
func WithIdentifierClassifier(classify func(string) bool) ResolverOption {
	return func(r *Resolver) {
		if classify != nil {
			r.classify = classify
		}
	}
}

// NewResolver builds a resolver over store. Stores implementing
// records.IdentifierClassifier supply the identifier check.
func NewResolver(store records.Store, registry *resources.Registry, opts ...ResolverOption) *Resolver {
	if registry == nil {
		registry = resources.DefaultRegistry()
	}
	r := &Resolver{
		store:    store,
		registry: registry,
		classify: identity.LooksLikeID,
		logger:   logging.NoOp(),
		metrics:  metrics.Nop{},
	}
	if classifier, ok := store.(records.IdentifierClassifier); ok {
		r.classify = classifier.LooksLikeID
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Registry returns the resource registry used by the resolver.
func (r *Resolver) Registry() *resources.Registry {
	return r.registry
}

// Resolve finds the published record addressed by segs.
//
// For resources whose secondary segment is the identifier, an identifier-like
// secondary segment is tried first. Otherwise the primary segment is looked up
// as a slug, then as an identifier when it looks like one.
func (r *Resolver) Resolve(ctx context.Context, t resources.Type, segs resources.Segments) (*Resolution, error) {
	def, err := r.registry.Lookup(t)
	if err != nil {
		r.logger.Warn("resolver.unknown_resource", "resource", t)
		return nil, ErrNotFound
	}
	segs = segs.Trimmed()
	logger := logging.WithLookup(r.logger.WithContext(ctx), string(t), segs.Primary, "")

	if def.Secondary == resources.SecondaryID && segs.Secondary != "" && r.classify(segs.Secondary) {
		rec, err := r.store.FindByID(ctx, def, segs.Secondary)
		switch {
		case err == nil:
			return r.resolution(def, rec), nil
		case !records.IsNotFound(err):
			return nil, r.fail(logger, def, err)
		}
	}

	if segs.Primary == "" {
		return nil, ErrNotFound
	}

	rec, err := r.store.FindBySlug(ctx, def, segs.Primary)
	if err == nil {
		return r.resolution(def, rec), nil
	}
	if !records.IsNotFound(err) {
		return nil, r.fail(logger, def, err)
	}
	if !r.classify(segs.Primary) {
		return nil, ErrNotFound
	}

	rec, err = r.store.FindByID(ctx, def, segs.Primary)
	if err == nil {
		return r.resolution(def, rec), nil
	}
	if !records.IsNotFound(err) {
		return nil, r.fail(logger, def, err)
	}
	return nil, ErrNotFound
}

func (r *Resolver) resolution(def resources.Definition, rec *records.Record) *Resolution {
	segs := def.CanonicalSegments(rec.ID, rec.Slug, rec.Country)
	return &Resolution{
		Type:      def.Type,
		ID:        rec.ID,
		Slug:      segs.Primary,
		Secondary: segs.Secondary,
		Path:      def.Path(segs),
		Record:    rec,
	}
}

func (r *Resolver) fail(logger interfaces.Logger, def resources.Definition, err error) error {
	logger.Error("resolver.lookup_failed", "error", err)
	r.metrics.ObserveLookupError(string(def.Type))
	return ErrNotFound
}
