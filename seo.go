package seo

import (
	"context"
	"net/http"

	"github.com/goliatone/go-seo/internal/canonical"
	sitemapcmd "github.com/goliatone/go-seo/internal/commands/sitemap"
	slugscmd "github.com/goliatone/go-seo/internal/commands/slugs"
	"github.com/goliatone/go-seo/internal/di"
	"github.com/goliatone/go-seo/internal/identity"
	"github.com/goliatone/go-seo/internal/metadata"
	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/reslug"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/sitemap"
	"github.com/goliatone/go-seo/internal/slug"
)

// ResourceType identifies a routed resource.
type ResourceType = resources.Type

const (
	Blog       = resources.Blog
	News       = resources.News
	Classified = resources.Classified
	Company    = resources.Company
)

// Decision is the redirect gate outcome for a request.
type Decision = canonical.Decision

// Metadata is the SEO head data of a detail page.
type Metadata = metadata.Metadata

// Store exports the content store contract.
type Store = records.Store

// ReslugResult reports a slug reassignment.
type ReslugResult = reslug.Result

// RegenerateSitemapsCommand regenerates sitemap documents.
type RegenerateSitemapsCommand = sitemapcmd.RegenerateSitemapsCommand

// ReassignSlugCommand reassigns a record slug from its title.
type ReassignSlugCommand = slugscmd.ReassignSlugCommand

// NormalizeSlug lowercases input and reduces it to [a-z0-9-].
func NormalizeSlug(input string) string {
	return slug.Normalize(input)
}

// LooksLikeID reports whether a URL segment should be treated as a record identifier.
func LooksLikeID(segment string) bool {
	return identity.LooksLikeID(segment)
}

// Module represents the top level SEO runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a Module using the provided configuration and optional DI overrides.
func New(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Gate returns the redirect gate.
func (m *Module) Gate() *canonical.Gate {
	return m.container.Gate()
}

// Sitemaps returns the cached sitemap service.
func (m *Module) Sitemaps() *sitemap.Service {
	return m.container.Sitemaps()
}

// Reslug returns the slug reassignment service.
func (m *Module) Reslug() *reslug.Service {
	return m.container.Reslug()
}

// Handler returns a mux serving the public routes.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.container.PublicAPI().Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// RegenerateSitemaps executes the sitemap regeneration command.
func (m *Module) RegenerateSitemaps(ctx context.Context, cmd RegenerateSitemapsCommand) error {
	return m.container.RegenerateSitemapsHandler().Execute(ctx, cmd)
}

// ReassignSlug executes the slug reassignment command.
func (m *Module) ReassignSlug(ctx context.Context, cmd ReassignSlugCommand) error {
	return m.container.ReassignSlugHandler().Execute(ctx, cmd)
}

// StartWarmer starts the sitemap warmer when it is enabled.
func (m *Module) StartWarmer() {
	if warmer := m.container.Warmer(); warmer != nil {
		warmer.Start()
	}
}

// Close stops the warmer and releases the connections the module opened.
func (m *Module) Close(ctx context.Context) error {
	if warmer := m.container.Warmer(); warmer != nil {
		if err := warmer.Stop(ctx); err != nil {
			return err
		}
	}
	return m.container.Close()
}
