package resources

import (
	"fmt"
	"net/url"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// DefaultBaseURL is used when no site base URL is configured.
const DefaultBaseURL = "https://www.mlmdirectory.com"

const publicGroup = "public"

// URLBuilder turns canonical paths into absolute URLs using go-urlkit routes
// registered for every resource definition.
type URLBuilder struct {
	base    string
	manager *urlkit.RouteManager
	group   *urlkit.Group
}

// NewURLBuilder registers one route per definition under baseURL.
func NewURLBuilder(baseURL string, registry *Registry) (*URLBuilder, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("resources: invalid base url %q", baseURL)
	}

	paths := map[string]string{"home": "/"}
	for _, def := range registry.All() {
		paths[string(def.Type)] = routeTemplate(def)
	}
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    publicGroup,
			BaseURL: base,
			Paths:   paths,
		}},
	})

	builder := &URLBuilder{base: base, manager: manager}
	builder.group, err = lookupGroup(manager, publicGroup)
	if err != nil {
		return nil, err
	}
	return builder, nil
}

// Base returns the normalized base URL without a trailing slash.
func (b *URLBuilder) Base() string {
	if b == nil {
		return DefaultBaseURL
	}
	return b.base
}

// Absolute prefixes path with the base URL.
func (b *URLBuilder) Absolute(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.Base() + path
}

// Resource builds the absolute canonical URL of segs. It falls back to
// Absolute(def.Path(segs)) when the route cannot be built.
func (b *URLBuilder) Resource(def Definition, segs Segments) string {
	fallback := b.Absolute(def.Path(segs))
	if b == nil || b.group == nil {
		return fallback
	}
	builder, err := safeBuilder(b.group, string(def.Type))
	if err != nil {
		return fallback
	}
	builder.WithParam("slug", url.PathEscape(segs.Primary))
	if def.CanonicalSecondary {
		switch def.Secondary {
		case SecondaryID:
			builder.WithParam("id", url.PathEscape(segs.Secondary))
		case SecondaryCountry:
			builder.WithParam("country", url.PathEscape(segs.Secondary))
		}
	}
	built, err := builder.Build()
	if err != nil || strings.TrimSpace(built) == "" {
		return fallback
	}
	return built
}

func routeTemplate(def Definition) string {
	prefix := strings.TrimRight(def.RoutePrefix, "/")
	if !def.CanonicalSecondary {
		return prefix + "/:slug"
	}
	switch def.Secondary {
	case SecondaryID:
		return prefix + "/:slug/:id"
	case SecondaryCountry:
		return prefix + "/:country/:slug"
	default:
		return prefix + "/:slug"
	}
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("resources: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("resources: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
