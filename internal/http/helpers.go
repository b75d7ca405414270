package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-seo/internal/canonical"
	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/sitemap"
)

const (
	contentTypeXML      = "application/xml; charset=utf-8"
	contentTypeText     = "text/plain; charset=utf-8"
	sitemapCacheControl = "public, max-age=0, s-maxage=3600, stale-while-revalidate=86400"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// mapError never exposes err text; messages are fixed per category.
func mapError(err error) (int, errorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	case errors.Is(err, canonical.ErrNotFound), records.IsNotFound(err):
		return http.StatusNotFound, errorResponse{Error: "not_found"}
	case errors.Is(err, resources.ErrUnknownType), errors.Is(err, sitemap.ErrUnknownDocument):
		return http.StatusNotFound, errorResponse{Error: "not_found"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "request could not be completed"}
	}
}

// etagMatches reports whether an If-None-Match header covers etag.
func etagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
