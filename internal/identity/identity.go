// Package identity classifies path segments as opaque record identifiers and
// derives deterministic identifiers for seeded records and documents.
package identity

import (
	"regexp"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

var idPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// LooksLikeID reports whether segment has the 8-4-4-4-12 hex layout used for
// primary keys. It only decides whether a lookup by id is worth attempting.
func LooksLikeID(segment string) bool {
	return idPattern.MatchString(segment)
}

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by domain so different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RecordUUID derives the identifier of a seeded record of the given resource type.
func RecordUUID(resource, key string) uuid.UUID {
	return UUID("go-seo:" + strings.ToLower(strings.TrimSpace(resource)) + ":" + strings.TrimSpace(key))
}

// ETag returns a strong entity tag for a rendered document.
func ETag(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	return `"` + uuid.NewSHA1(uuid.NameSpaceURL, body).String() + `"`
}
