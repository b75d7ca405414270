package http

import (
	"net/http"
	"time"

	"github.com/goliatone/go-seo/internal/canonical"
	"github.com/goliatone/go-seo/internal/metadata"
	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/staticpages"
)

// PageView is what a Renderer receives for a resolved record.
type PageView struct {
	Type     resources.Type
	Record   *records.Record
	Metadata metadata.Metadata
}

// StaticView is what a Renderer receives for a static page.
type StaticView struct {
	Page         staticpages.Page
	CanonicalURL string
}

// Renderer writes page bodies. Layout and styling live in the host application.
type Renderer interface {
	RenderRecord(w http.ResponseWriter, r *http.Request, view PageView) error
	RenderStatic(w http.ResponseWriter, r *http.Request, view StaticView) error
	RenderNotFound(w http.ResponseWriter, r *http.Request) error
}

// JSONRenderer renders views as JSON documents.
type JSONRenderer struct{}

var _ Renderer = JSONRenderer{}

type recordPayload struct {
	Type         string   `json:"type"`
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	CanonicalURL string   `json:"canonical_url"`
	Image        string   `json:"image,omitempty"`
	JSONLD       string   `json:"json_ld,omitempty"`
	Body         string   `json:"body,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

type staticPayload struct {
	Path         string   `json:"path"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	CanonicalURL string   `json:"canonical_url"`
	HTML         string   `json:"html,omitempty"`
}

func (JSONRenderer) RenderRecord(w http.ResponseWriter, _ *http.Request, view PageView) error {
	payload := recordPayload{
		Type:         string(view.Type),
		Title:        view.Metadata.Title,
		Description:  view.Metadata.Description,
		Keywords:     view.Metadata.Keywords,
		CanonicalURL: view.Metadata.CanonicalURL,
		Image:        view.Metadata.Image,
		JSONLD:       view.Metadata.JSONLD(),
	}
	if rec := view.Record; rec != nil {
		payload.ID = rec.ID
		payload.Slug = rec.CanonicalSlug()
		payload.Body = rec.Body
		if rec.UpdatedAt != nil {
			payload.UpdatedAt = rec.UpdatedAt.UTC().Format(time.RFC3339)
		}
	}
	writeJSON(w, http.StatusOK, payload)
	return nil
}

func (JSONRenderer) RenderStatic(w http.ResponseWriter, _ *http.Request, view StaticView) error {
	writeJSON(w, http.StatusOK, staticPayload{
		Path:         view.Page.Path,
		Title:        view.Page.Title,
		Description:  view.Page.Description,
		Keywords:     view.Page.Keywords,
		CanonicalURL: view.CanonicalURL,
		HTML:         string(view.Page.HTML),
	})
	return nil
}

func (JSONRenderer) RenderNotFound(w http.ResponseWriter, _ *http.Request) error {
	writeError(w, canonical.ErrNotFound)
	return nil
}
