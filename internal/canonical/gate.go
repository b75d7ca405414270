package canonical

import (
	"context"
	"net/http"

	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/internal/metrics"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// Kind is the outcome of routing a request.
type Kind int

const (
	Render Kind = iota
	Redirect
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Decision tells a handler what to do with a request. NotFound decisions
// carry a Location when the resource fails soft to its list page.
type Decision struct {
	Kind       Kind
	Status     int
	Location   string
	ID         string
	Resolution *Resolution
}

// Route compares the requested segments with the canonical ones.
//
// Comparison is always against the canonical slug (identifier fallback
// applied), never the stored slug column, so records without a slug render at
// their identifier instead of redirecting to themselves. Requested segments
// are compared verbatim; padded variants redirect to the canonical path.
func Route(def resources.Definition, requested resources.Segments, res *Resolution) Decision {
	if res == nil {
		if def.FailMode == resources.FailSoft && def.ListPath != "" {
			return Decision{Kind: NotFound, Status: http.StatusFound, Location: def.ListPath}
		}
		return Decision{Kind: NotFound, Status: http.StatusNotFound}
	}

	if requested.Primary != res.Slug || requested.Secondary != res.Secondary {
		return Decision{
			Kind:       Redirect,
			Status:     http.StatusMovedPermanently,
			Location:   res.Path,
			ID:         res.ID,
			Resolution: res,
		}
	}
	return Decision{Kind: Render, Status: http.StatusOK, ID: res.ID, Resolution: res}
}

// Gate runs resolution and routing for a request, recording the decision.
type Gate struct {
	resolver *Resolver
	metrics  metrics.Recorder
	logger   interfaces.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateLogger sets the decision logger.
func WithGateLogger(logger interfaces.Logger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithGateMetrics sets the decision recorder.
func WithGateMetrics(recorder metrics.Recorder) GateOption {
	return func(g *Gate) {
		g.metrics = metrics.Ensure(recorder)
	}
}

// NewGate builds a gate over resolver.
func NewGate(resolver *Resolver, opts ...GateOption) *Gate {
	g := &Gate{
		resolver: resolver,
		metrics:  metrics.Nop{},
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Registry returns the definitions the gate routes.
func (g *Gate) Registry() *resources.Registry {
	return g.resolver.Registry()
}

// Decide resolves segs for t and routes the request.
func (g *Gate) Decide(ctx context.Context, t resources.Type, segs resources.Segments) Decision {
	def, err := g.resolver.Registry().Lookup(t)
	if err != nil {
		g.metrics.ObserveDecision(string(t), NotFound.String())
		return Decision{Kind: NotFound, Status: http.StatusNotFound}
	}

	res, err := g.resolver.Resolve(ctx, t, segs)
	if err != nil {
		res = nil
	}
	decision := Route(def, segs, res)

	g.metrics.ObserveDecision(string(t), decision.Kind.String())
	logging.WithLookup(g.logger.WithContext(ctx), string(t), segs.Primary, decision.ID).
		Debug("gate.decision", "kind", decision.Kind.String(), "status", decision.Status, "location", decision.Location)
	return decision
}
