package resources

import (
	"fmt"
	"sort"
	"sync"
)

const (
	ChangeFreqMonthly = "monthly"
	ChangeFreqDaily   = "daily"
	ChangeFreqWeekly  = "weekly"

	PriorityStatic   = 1.0
	PriorityListing  = 0.8
	PriorityArticles = 0.7
)

// Registry holds resource definitions keyed by type.
type Registry struct {
	mu    sync.RWMutex
	defs  map[Type]Definition
	order []Type
}

// NewRegistry builds a registry from defs, preserving their order.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{defs: make(map[Type]Definition, len(defs))}
	for _, def := range defs {
		_ = r.Register(def)
	}
	return r
}

// DefaultRegistry returns the blog, news, classifieds and company definitions.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Definition{
			Type:               Blog,
			Table:              "blogs",
			StatusColumn:       "status",
			StatusValue:        "published",
			Secondary:          SecondaryID,
			CanonicalSecondary: true,
			FailMode:           FailSoft,
			RoutePrefix:        "/blog",
			ListPath:           "/blog",
			SitemapName:        "blogs",
			ChangeFreq:         ChangeFreqWeekly,
			Priority:           PriorityArticles,
			SchemaType:         "BlogPosting",
		},
		Definition{
			Type:         News,
			Table:        "news",
			StatusColumn: "published",
			StatusValue:  true,
			Secondary:    SecondaryID,
			FailMode:     FailSoft,
			RoutePrefix:  "/news",
			ListPath:     "/news",
			SitemapName:  "news",
			ChangeFreq:   ChangeFreqWeekly,
			Priority:     PriorityArticles,
			SchemaType:   "NewsArticle",
		},
		Definition{
			Type:         Classified,
			Table:        "classifieds",
			StatusColumn: "status",
			StatusValue:  "active",
			FailMode:     FailSoft,
			RoutePrefix:  "/classifieds",
			ListPath:     "/classifieds",
			SitemapName:  "classifieds",
			ChangeFreq:   ChangeFreqDaily,
			Priority:     PriorityListing,
			SchemaType:   "Product",
		},
		Definition{
			Type:               Company,
			Table:              "companies",
			StatusColumn:       "status",
			StatusValue:        "approved",
			Secondary:          SecondaryCountry,
			CanonicalSecondary: true,
			FailMode:           FailHard,
			RoutePrefix:        "/company",
			ListPath:           "/companies",
			SitemapName:        "companies",
			ChangeFreq:         ChangeFreqDaily,
			Priority:           PriorityListing,
			SchemaType:         "Organization",
		},
	)
}

// Register adds or replaces a definition.
func (r *Registry) Register(def Definition) error {
	if def.Type == "" {
		return fmt.Errorf("resources: definition type required")
	}
	if def.RoutePrefix == "" {
		return fmt.Errorf("resources: route prefix required for %s", def.Type)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Type]; !exists {
		r.order = append(r.order, def.Type)
	}
	r.defs[def.Type] = def
	return nil
}

// Lookup returns the definition registered for t.
func (r *Registry) Lookup(t Type) (Definition, error) {
	if r == nil {
		return Definition{}, ErrUnknownType
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[t]
	if !ok {
		return Definition{}, ErrUnknownType
	}
	return def, nil
}

// All returns the definitions in registration order.
func (r *Registry) All() []Definition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.defs[t])
	}
	return out
}

// BySitemapName finds the definition whose sitemap document is name.
func (r *Registry) BySitemapName(name string) (Definition, error) {
	for _, def := range r.All() {
		if def.SitemapName == name {
			return def, nil
		}
	}
	return Definition{}, ErrUnknownType
}

// SitemapNames lists sitemap document names in sorted order.
func (r *Registry) SitemapNames() []string {
	defs := r.All()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		if def.SitemapName != "" {
			names = append(names, def.SitemapName)
		}
	}
	sort.Strings(names)
	return names
}
