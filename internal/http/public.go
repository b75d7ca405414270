package http

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-seo/internal/canonical"
	"github.com/goliatone/go-seo/internal/identity"
	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/internal/metadata"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/sitemap"
	"github.com/goliatone/go-seo/internal/staticpages"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// PublicAPI registers the crawler-facing routes.
type PublicAPI struct {
	gate     *canonical.Gate
	sitemaps *sitemap.Service
	urls     *resources.URLBuilder
	pages    *staticpages.Registry
	renderer Renderer
	metrics  http.Handler
	logger   interfaces.Logger
	meta     metadata.Options
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs a PublicAPI instance.
func NewPublicAPI(opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		renderer: JSONRenderer{},
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithGate wires the redirect gate used by resource routes.
func WithGate(gate *canonical.Gate) PublicOption {
	return func(api *PublicAPI) {
		api.gate = gate
	}
}

// WithSitemaps wires the sitemap document service.
func WithSitemaps(service *sitemap.Service) PublicOption {
	return func(api *PublicAPI) {
		api.sitemaps = service
	}
}

// WithURLBuilder sets the builder used for canonical URLs in page metadata.
func WithURLBuilder(urls *resources.URLBuilder) PublicOption {
	return func(api *PublicAPI) {
		api.urls = urls
	}
}

// WithStaticPages wires the static page registry.
func WithStaticPages(pages *staticpages.Registry) PublicOption {
	return func(api *PublicAPI) {
		api.pages = pages
	}
}

// WithRenderer overrides the JSON renderer.
func WithRenderer(renderer Renderer) PublicOption {
	return func(api *PublicAPI) {
		if renderer != nil {
			api.renderer = renderer
		}
	}
}

// WithMetricsHandler mounts handler at /metrics.
func WithMetricsHandler(handler http.Handler) PublicOption {
	return func(api *PublicAPI) {
		api.metrics = handler
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		api.logger = logging.Ensure(logger)
	}
}

// WithMetadataOptions sets the site name and description length used for page metadata.
func WithMetadataOptions(opts metadata.Options) PublicOption {
	return func(api *PublicAPI) {
		api.meta = opts
	}
}

// Register attaches the public endpoints to the provided mux.
func (api *PublicAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: public api is nil")
	}

	mux.HandleFunc("GET /healthz", api.handleHealth)
	if api.metrics != nil {
		mux.Handle("GET /metrics", api.metrics)
	}
	if api.gate != nil {
		for _, def := range api.gate.Registry().All() {
			api.registerResourceRoutes(mux, def)
		}
	}
	if api.sitemaps != nil {
		api.registerSitemapRoutes(mux)
	}
	if api.pages != nil {
		for _, page := range api.pages.All() {
			pattern := page.Path
			if pattern == "/" {
				pattern = "/{$}"
			}
			mux.HandleFunc("GET "+pattern, api.handleStatic(page))
		}
	}
	return nil
}

func (api *PublicAPI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *PublicAPI) handleStatic(page staticpages.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := StaticView{Page: page, CanonicalURL: api.urls.Absolute(page.Path)}
		if err := api.renderer.RenderStatic(w, r, view); err != nil {
			api.logger.Error("http.render_failed", "path", page.Path, "error", err)
		}
	}
}

func (api *PublicAPI) registerSitemapRoutes(mux *http.ServeMux) {
	for _, name := range api.sitemaps.Emitter().DocumentNames() {
		mux.HandleFunc("GET /"+name+".xml", api.handleSitemap(name))
	}
	mux.HandleFunc("GET /robots.txt", api.handleRobots)
}

func (api *PublicAPI) handleSitemap(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := api.sitemaps.Document(r.Context(), name)
		w.Header().Set("Content-Type", contentTypeXML)
		if err != nil {
			api.logger.WithContext(r.Context()).Error("http.sitemap_failed", "document", name, "error", err)
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write(sitemap.ErrorDocument(err))
			return
		}
		etag := identity.ETag(body)
		w.Header().Set("Cache-Control", sitemapCacheControl)
		w.Header().Set("ETag", etag)
		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func (api *PublicAPI) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.sitemaps.Robots())
}

func (api *PublicAPI) registerResourceRoutes(mux *http.ServeMux, def resources.Definition) {
	root := joinPath(def.RoutePrefix, "")
	mux.HandleFunc("GET "+root+"/{slug}", api.handleResource(def))
	switch def.Secondary {
	case resources.SecondaryID:
		mux.HandleFunc("GET "+root+"/{slug}/{secondary}", api.handleResource(def))
	case resources.SecondaryCountry:
		mux.HandleFunc("GET "+root+"/{secondary}/{slug}", api.handleResource(def))
	}
}

func (api *PublicAPI) handleResource(def resources.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		segs := resources.Segments{
			Primary:   r.PathValue("slug"),
			Secondary: r.PathValue("secondary"),
		}
		decision := api.gate.Decide(r.Context(), def.Type, segs)

		switch decision.Kind {
		case canonical.Redirect:
			http.Redirect(w, r, decision.Location, decision.Status)
		case canonical.Render:
			res := decision.Resolution
			view := PageView{
				Type:     def.Type,
				Record:   res.Record,
				Metadata: metadata.Synthesize(def, res.Record, api.urls.Resource(def, res.Segments()), api.meta),
			}
			if err := api.renderer.RenderRecord(w, r, view); err != nil {
				api.logger.WithContext(r.Context()).Error("http.render_failed", "resource", string(def.Type), "error", err)
			}
		default:
			if decision.Location != "" {
				http.Redirect(w, r, decision.Location, decision.Status)
				return
			}
			w.Header().Set("Cache-Control", "no-store")
			if err := api.renderer.RenderNotFound(w, r); err != nil {
				api.logger.WithContext(r.Context()).Error("http.render_failed", "resource", string(def.Type), "error", err)
			}
		}
	}
}
