// Package sitemap emits the XML sitemap documents, the sitemap index and
// robots.txt, and keeps generated documents warm in a document cache.
package sitemap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/internal/metrics"
	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/staticpages"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// Document names, served at "/<name>.xml".
const (
	IndexDocument  = "sitemap"
	StaticDocument = "sitemap-static"
)

// ErrUnknownDocument is returned for document names with no emitter.
var ErrUnknownDocument = errors.New("sitemap: unknown document")

// DocumentName returns the document name of a resource sitemap.
func DocumentName(def resources.Definition) string {
	return IndexDocument + "-" + def.SitemapName
}

// Emitter builds sitemap documents from the content store.
type Emitter struct {
	store    records.Store
	registry *resources.Registry
	urls     *resources.URLBuilder
	pages    *staticpages.Registry
	logger   interfaces.Logger
	metrics  metrics.Recorder
	now      func() time.Time
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger sets the emitter logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Emitter) {
		e.logger = logging.Ensure(logger)
	}
}

// WithMetrics sets the emission recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(e *Emitter) {
		e.metrics = metrics.Ensure(recorder)
	}
}

// WithStaticPages sets the pages listed in the static sitemap.
func WithStaticPages(pages *staticpages.Registry) Option {
	return func(e *Emitter) {
		if pages != nil {
			e.pages = pages
		}
	}
}

// WithClock overrides the time source used for missing dates and the index.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEmitter builds an emitter. Static pages default to staticpages.Defaults.
func NewEmitter(store records.Store, registry *resources.Registry, urls *resources.URLBuilder, opts ...Option) *Emitter {
	if registry == nil {
		registry = resources.DefaultRegistry()
	}
	e := &Emitter{
		store:    store,
		registry: registry,
		urls:     urls,
		pages:    staticpages.NewRegistry(staticpages.Defaults()...),
		logger:   logging.NoOp(),
		metrics:  metrics.Nop{},
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Now returns the emitter clock reading.
func (e *Emitter) Now() time.Time {
	return e.now()
}

// DocumentNames lists every document the emitter can produce, index first.
func (e *Emitter) DocumentNames() []string {
	names := []string{IndexDocument, StaticDocument}
	for _, name := range e.registry.SitemapNames() {
		names = append(names, IndexDocument+"-"+name)
	}
	return names
}

// Document emits the named document.
func (e *Emitter) Document(ctx context.Context, name string) ([]byte, error) {
	name = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(name), "/"), ".xml")
	switch name {
	case IndexDocument:
		return e.EmitIndex(e.now()), nil
	case StaticDocument:
		return e.EmitStatic(e.now()), nil
	}
	sitemapName, ok := strings.CutPrefix(name, IndexDocument+"-")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, name)
	}
	def, err := e.registry.BySitemapName(sitemapName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, name)
	}
	return e.Emit(ctx, def.Type)
}

// Emit renders the sitemap of one resource type. A store failure is returned
// so callers can answer with ErrorDocument instead of an empty sitemap.
func (e *Emitter) Emit(ctx context.Context, t resources.Type) ([]byte, error) {
	begin := time.Now()
	now := e.now()
	def, err := e.registry.Lookup(t)
	if err != nil {
		return nil, err
	}
	document := DocumentName(def)
	logger := logging.WithFields(e.logger.WithContext(ctx), map[string]any{"document": document})

	rows, err := e.store.ListPublished(ctx, def)
	if err != nil {
		logger.Error("sitemap.query_failed", "error", err)
		e.metrics.ObserveSitemap(document, metrics.OutcomeError, 0, time.Since(begin))
		return nil, err
	}

	entries := make([]urlEntry, 0, len(rows))
	for _, rec := range rows {
		if rec == nil || !rec.Published || strings.TrimSpace(rec.ID) == "" {
			continue
		}
		entries = append(entries, urlEntry{
			Loc:        e.urls.Resource(def, def.CanonicalSegments(rec.ID, rec.Slug, rec.Country)),
			LastMod:    lastmod(rec.LastModified(now)),
			ChangeFreq: def.ChangeFreq,
			Priority:   priority(def.Priority),
		})
	}
	entries = normalizeEntries(entries)

	body, err := encode(urlSet{Xmlns: xmlns, URLs: entries})
	if err != nil {
		e.metrics.ObserveSitemap(document, metrics.OutcomeError, 0, time.Since(begin))
		return nil, err
	}
	e.metrics.ObserveSitemap(document, metrics.OutcomeOK, len(entries), time.Since(begin))
	logger.Debug("sitemap.emitted", "entries", len(entries))
	return body, nil
}

// EmitStatic renders the static pages sitemap.
func (e *Emitter) EmitStatic(now time.Time) []byte {
	pages := e.pages.All()
	entries := make([]urlEntry, 0, len(pages))
	for _, page := range pages {
		modified := now
		if page.LastModified != nil && !page.LastModified.IsZero() {
			modified = *page.LastModified
		}
		entries = append(entries, urlEntry{
			Loc:        e.urls.Absolute(page.Path),
			LastMod:    lastmod(modified),
			ChangeFreq: page.ChangeFreq,
			Priority:   priority(page.Priority),
		})
	}
	entries = normalizeEntries(entries)
	body, err := encode(urlSet{Xmlns: xmlns, URLs: entries})
	if err != nil {
		return ErrorDocument(err)
	}
	e.metrics.ObserveSitemap(StaticDocument, metrics.OutcomeOK, len(entries), 0)
	return body
}

// EmitIndex renders the sitemap index listing every sub-sitemap with now as lastmod.
func (e *Emitter) EmitIndex(now time.Time) []byte {
	names := e.DocumentNames()[1:]
	entries := make([]indexEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, indexEntry{
			Loc:     e.urls.Absolute("/" + name + ".xml"),
			LastMod: lastmod(now),
		})
	}
	body, err := encode(sitemapIndex{Xmlns: xmlns, Sitemaps: entries})
	if err != nil {
		return ErrorDocument(err)
	}
	return body
}

// Robots renders robots.txt pointing crawlers at the sitemap index.
func (e *Emitter) Robots() []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n\n")
	b.WriteString("Sitemap: ")
	b.WriteString(e.urls.Absolute("/" + IndexDocument + ".xml"))
	b.WriteString("\n")
	return []byte(b.String())
}
