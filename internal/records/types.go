// Package records defines the validated content record read by the canonical
// resolver and sitemap emitter, and the stores that provide it.
package records

import (
	"context"
	"time"

	"github.com/goliatone/go-seo/internal/resources"
)

// Body formats understood by the metadata synthesizer.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Record is a blog post, news article, classified listing or company profile
// after boundary validation.
type Record struct {
	Type resources.Type
	ID   string
	Slug string

	Published bool

	Title      string
	Body       string
	BodyFormat string

	MetaDescription string
	MetaKeywords    string
	FocusKeyword    string
	ImageURL        string

	Author  string
	Country string
	City    string
	Price   string

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// CanonicalSlug returns Slug, or ID when no slug is assigned.
func (r *Record) CanonicalSlug() string {
	if r == nil {
		return ""
	}
	return resources.CanonicalSlug(r.ID, r.Slug)
}

// LastModified returns UpdatedAt, else CreatedAt, else now.
func (r *Record) LastModified(now time.Time) time.Time {
	if r != nil && r.UpdatedAt != nil && !r.UpdatedAt.IsZero() {
		return *r.UpdatedAt
	}
	if r != nil && r.CreatedAt != nil && !r.CreatedAt.IsZero() {
		return *r.CreatedAt
	}
	return now
}

// Store is the read and slug-write contract of the external content database.
// Find and List methods only return records whose status marks them public.
type Store interface {
	FindBySlug(ctx context.Context, def resources.Definition, slug string) (*Record, error)
	FindByID(ctx context.Context, def resources.Definition, id string) (*Record, error)
	ListPublished(ctx context.Context, def resources.Definition) ([]*Record, error)
	SlugTaken(ctx context.Context, def resources.Definition, slug, exceptID string) (bool, error)
	AssignSlug(ctx context.Context, def resources.Definition, id, slug string) error
}

// IdentifierClassifier lets a store declare its own identifier format.
// Resolvers fall back to identity.LooksLikeID for stores without it.
type IdentifierClassifier interface {
	LooksLikeID(segment string) bool
}
