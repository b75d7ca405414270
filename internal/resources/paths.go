package resources

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-seo/internal/slug"
)

// CanonicalSlug applies the slug-or-id fallback. Every canonical path must be
// built from this value or a record without a slug redirects to itself.
func CanonicalSlug(id, recordSlug string) string {
	if trimmed := strings.TrimSpace(recordSlug); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(id)
}

// CountrySegment normalizes a company country into its path segment.
func CountrySegment(country string) string {
	if normalized := slug.Normalize(country); normalized != "" {
		return normalized
	}
	return GlobalCountry
}

// CanonicalSegments returns the segments of the canonical path for a record.
func (d Definition) CanonicalSegments(id, recordSlug, country string) Segments {
	segs := Segments{Primary: CanonicalSlug(id, recordSlug)}
	if !d.CanonicalSecondary {
		return segs
	}
	switch d.Secondary {
	case SecondaryID:
		segs.Secondary = strings.TrimSpace(id)
	case SecondaryCountry:
		segs.Secondary = CountrySegment(country)
	}
	return segs
}

// Path renders segs under the resource route prefix. Country segments come
// before the slug; id segments come after it.
func (d Definition) Path(segs Segments) string {
	parts := []string{strings.TrimRight(d.RoutePrefix, "/")}
	secondary := strings.TrimSpace(segs.Secondary)
	if d.Secondary == SecondaryCountry && secondary != "" {
		parts = append(parts, url.PathEscape(secondary))
	}
	parts = append(parts, url.PathEscape(strings.TrimSpace(segs.Primary)))
	if d.Secondary == SecondaryID && secondary != "" {
		parts = append(parts, url.PathEscape(secondary))
	}
	return strings.Join(parts, "/")
}

// CanonicalPath is Path applied to CanonicalSegments.
func (d Definition) CanonicalPath(id, recordSlug, country string) string {
	return d.Path(d.CanonicalSegments(id, recordSlug, country))
}

// ParsePath splits a path under the route prefix back into segments.
func (d Definition) ParsePath(path string) (Segments, bool) {
	prefix := strings.TrimRight(d.RoutePrefix, "/") + "/"
	if !strings.HasPrefix(path, prefix) {
		return Segments{}, false
	}
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return Segments{}, false
	}
	parts := strings.Split(rest, "/")
	for i, part := range parts {
		unescaped, err := url.PathUnescape(part)
		if err != nil {
			return Segments{}, false
		}
		parts[i] = unescaped
	}
	switch {
	case len(parts) == 1 && d.Secondary != SecondaryCountry:
		return Segments{Primary: parts[0]}, true
	case len(parts) == 2 && d.Secondary == SecondaryCountry:
		return Segments{Primary: parts[1], Secondary: parts[0]}, true
	case len(parts) == 2 && d.Secondary == SecondaryID:
		return Segments{Primary: parts[0], Secondary: parts[1]}, true
	default:
		return Segments{}, false
	}
}
