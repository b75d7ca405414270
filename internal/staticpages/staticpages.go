// Package staticpages holds the fixed site pages and Markdown pages listed in
// the static sitemap.
package staticpages

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-seo/internal/markdown"
	"github.com/goliatone/go-seo/internal/metadata"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/slug"
)

// Page is a non-record page with fixed sitemap settings.
type Page struct {
	Path         string
	Title        string
	Description  string
	Keywords     []string
	ChangeFreq   string
	Priority     float64
	LastModified *time.Time
	HTML         []byte
}

// Defaults returns the built-in site pages and list indexes.
func Defaults() []Page {
	static := func(p, title string) Page {
		return Page{Path: p, Title: title, ChangeFreq: resources.ChangeFreqMonthly, Priority: resources.PriorityStatic}
	}
	listing := func(p, title string) Page {
		return Page{Path: p, Title: title, ChangeFreq: resources.ChangeFreqDaily, Priority: resources.PriorityListing}
	}
	return []Page{
		static("/", "Home"),
		static("/about", "About"),
		static("/faq", "FAQ"),
		static("/contact", "Contact"),
		listing("/companies", "Companies"),
		listing("/classifieds", "Classifieds"),
		listing("/blog", "Blog"),
		listing("/news", "News"),
	}
}

// Registry is an immutable set of pages keyed by path.
type Registry struct {
	pages map[string]Page
}

// NewRegistry builds a registry. Later pages replace earlier ones with the same path.
func NewRegistry(pages ...Page) *Registry {
	r := &Registry{pages: make(map[string]Page, len(pages))}
	for _, page := range pages {
		page.Path = cleanPath(page.Path)
		r.pages[page.Path] = page
	}
	return r
}

// Load merges the Markdown pages found in fsys over base. Draft pages are skipped.
func Load(ctx context.Context, fsys fs.FS, base []Page) (*Registry, error) {
	pages := append([]Page(nil), base...)
	if fsys == nil {
		return NewRegistry(pages...), nil
	}
	docs, err := markdown.NewLoader(fsys, "").LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if doc.FrontMatter.Draft {
			continue
		}
		pages = append(pages, fromDocument(doc))
	}
	return NewRegistry(pages...), nil
}

// All returns the pages sorted by path.
func (r *Registry) All() []Page {
	if r == nil {
		return nil
	}
	out := make([]Page, 0, len(r.pages))
	for _, page := range r.pages {
		out = append(out, page)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Lookup returns the page registered at path.
func (r *Registry) Lookup(p string) (Page, bool) {
	if r == nil {
		return Page{}, false
	}
	page, ok := r.pages[cleanPath(p)]
	return page, ok
}

func fromDocument(doc *markdown.Document) Page {
	meta := doc.FrontMatter
	page := Page{
		Path:        meta.Path,
		Title:       meta.Title,
		Description: meta.Description,
		Keywords:    append([]string(nil), meta.Keywords...),
		ChangeFreq:  meta.ChangeFreq,
		Priority:    meta.Priority,
		HTML:        doc.HTML,
	}
	if page.Path == "" {
		page.Path = pathFromFile(doc.FilePath)
	}
	if page.Description == "" {
		page.Description = metadata.TruncateDescription(metadata.StripMarkup(string(doc.HTML)), metadata.DefaultDescriptionLength)
	}
	if page.ChangeFreq == "" {
		page.ChangeFreq = resources.ChangeFreqMonthly
	}
	if page.Priority <= 0 || page.Priority > 1 {
		page.Priority = resources.PriorityStatic
	}
	switch {
	case !meta.Updated.IsZero():
		updated := meta.Updated
		page.LastModified = &updated
	case !doc.LastModified.IsZero():
		modified := doc.LastModified
		page.LastModified = &modified
	}
	return page
}

func pathFromFile(name string) string {
	trimmed := strings.TrimSuffix(name, path.Ext(name))
	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if normalized := slug.Normalize(part); normalized != "" && normalized != "index" {
			out = append(out, normalized)
		}
	}
	return "/" + strings.Join(out, "/")
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	return "/" + strings.Trim(p, "/")
}
