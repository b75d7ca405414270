// Package metadata derives page titles, descriptions, keywords and JSON-LD
// structured data from content records. Synthesis never fails; missing fields
// are omitted from the output.
package metadata

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/resources"
)

const schemaContext = "https://schema.org"

// Options tunes synthesis.
type Options struct {
	SiteName          string
	DescriptionLength int
}

// Metadata is the SEO head data of a detail page.
type Metadata struct {
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Keywords       []string       `json:"keywords,omitempty"`
	CanonicalURL   string         `json:"canonical_url,omitempty"`
	Image          string         `json:"image,omitempty"`
	StructuredData map[string]any `json:"structured_data,omitempty"`
}

// JSONLD renders the structured data for a script tag. It returns an empty
// string when there is nothing to render.
func (m Metadata) JSONLD() string {
	if len(m.StructuredData) == 0 {
		return ""
	}
	data, err := json.Marshal(m.StructuredData)
	if err != nil {
		return ""
	}
	return string(data)
}

// Synthesize builds metadata for rec published at canonicalURL.
func Synthesize(def resources.Definition, rec *records.Record, canonicalURL string, opts Options) Metadata {
	if rec == nil {
		return Metadata{Title: strings.TrimSpace(opts.SiteName), CanonicalURL: canonicalURL}
	}
	length := opts.DescriptionLength
	if length <= 0 {
		length = DefaultDescriptionLength
	}

	description := strings.TrimSpace(rec.MetaDescription)
	if description == "" {
		description = TruncateDescription(PlainText(rec.Body, rec.BodyFormat), length)
	}

	meta := Metadata{
		Title:        pageTitle(rec.Title, opts.SiteName),
		Description:  description,
		Keywords:     Keywords(rec.MetaKeywords, rec.FocusKeyword),
		CanonicalURL: canonicalURL,
		Image:        strings.TrimSpace(rec.ImageURL),
	}
	meta.StructuredData = structuredData(def, rec, meta, opts)
	return meta
}

func pageTitle(title, site string) string {
	title = strings.TrimSpace(title)
	site = strings.TrimSpace(site)
	switch {
	case title == "":
		return site
	case site == "":
		return title
	default:
		return title + " | " + site
	}
}

func structuredData(def resources.Definition, rec *records.Record, meta Metadata, opts Options) map[string]any {
	schemaType := def.SchemaType
	if schemaType == "" {
		schemaType = "Article"
	}
	data := map[string]any{
		"@context": schemaContext,
		"@type":    schemaType,
	}
	put(data, "url", meta.CanonicalURL)
	put(data, "description", meta.Description)

	switch schemaType {
	case "Organization":
		put(data, "name", rec.Title)
		put(data, "logo", meta.Image)
		address := map[string]any{"@type": "PostalAddress"}
		put(address, "addressCountry", rec.Country)
		put(address, "addressLocality", rec.City)
		if len(address) > 1 {
			data["address"] = address
		}
	case "Product":
		put(data, "name", rec.Title)
		put(data, "image", meta.Image)
		if price := strings.TrimSpace(rec.Price); price != "" {
			offer := map[string]any{"@type": "Offer", "price": price}
			put(offer, "url", meta.CanonicalURL)
			data["offers"] = offer
		}
	default:
		put(data, "headline", rec.Title)
		put(data, "image", meta.Image)
		put(data, "mainEntityOfPage", meta.CanonicalURL)
		putTime(data, "datePublished", rec.CreatedAt)
		putTime(data, "dateModified", rec.UpdatedAt)
		if author := strings.TrimSpace(rec.Author); author != "" {
			data["author"] = map[string]any{"@type": "Person", "name": author}
		}
		if site := strings.TrimSpace(opts.SiteName); site != "" {
			data["publisher"] = map[string]any{"@type": "Organization", "name": site}
		}
	}
	if len(meta.Keywords) > 0 {
		data["keywords"] = strings.Join(meta.Keywords, ", ")
	}
	return data
}

func put(target map[string]any, key, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		target[key] = trimmed
	}
}

func putTime(target map[string]any, key string, value *time.Time) {
	if value != nil && !value.IsZero() {
		target[key] = value.UTC().Format(time.RFC3339)
	}
}
