// Package resources describes the publicly routed resource types and how their
// canonical paths are built.
package resources

import (
	"errors"
	"strings"
)

// Type identifies a routed resource.
type Type string

const (
	Blog       Type = "blog"
	News       Type = "news"
	Classified Type = "classified"
	Company    Type = "company"
)

// SecondaryKind describes what the optional second path segment carries.
type SecondaryKind int

const (
	SecondaryNone SecondaryKind = iota
	// SecondaryID carries the record identifier after the slug.
	SecondaryID
	// SecondaryCountry carries the normalized country before the slug.
	SecondaryCountry
)

// FailMode selects how an unresolved lookup is surfaced.
type FailMode int

const (
	// FailSoft redirects to the resource list page.
	FailSoft FailMode = iota
	// FailHard renders a not found page.
	FailHard
)

// GlobalCountry is the country segment used for companies without a country.
const GlobalCountry = "global"

var ErrUnknownType = errors.New("resources: unknown resource type")

// Definition is the per-resource configuration that drives resolution,
// redirects and sitemap emission.
type Definition struct {
	Type  Type
	Table string

	StatusColumn string
	StatusValue  any

	Secondary SecondaryKind
	// CanonicalSecondary keeps the secondary segment in the canonical path.
	// Resources that accept an optional id segment but canonicalize without
	// it leave this false.
	CanonicalSecondary bool

	FailMode    FailMode
	RoutePrefix string
	ListPath    string

	SitemapName string
	ChangeFreq  string
	Priority    float64
	SchemaType  string
}

// Segments is the slug-or-id pair extracted from an inbound path.
type Segments struct {
	Primary   string
	Secondary string
}

// Trimmed returns a copy with surrounding whitespace and slashes removed.
func (s Segments) Trimmed() Segments {
	return Segments{
		Primary:   strings.Trim(strings.TrimSpace(s.Primary), "/"),
		Secondary: strings.Trim(strings.TrimSpace(s.Secondary), "/"),
	}
}

// ParseType maps user input such as "blogs" or "Companies" to a Type.
func ParseType(value string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "blog", "blogs":
		return Blog, nil
	case "news":
		return News, nil
	case "classified", "classifieds":
		return Classified, nil
	case "company", "companies":
		return Company, nil
	default:
		return "", ErrUnknownType
	}
}
