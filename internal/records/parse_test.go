package records

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-seo/internal/resources"
)

func definition(t *testing.T, typ resources.Type) resources.Definition {
	t.Helper()
	def, err := resources.DefaultRegistry().Lookup(typ)
	if err != nil {
		t.Fatalf("lookup %s: %v", typ, err)
	}
	return def
}

func TestParseBuildsRecordFromRow(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	slug := "acme-mlm"
	res := Parse(definition(t, resources.Company), Raw{
		"id":          id,
		"slug":        &slug,
		"status":      "Approved",
		"name":        " Acme MLM ",
		"description": "<p>Direct selling</p>",
		"country":     "India",
		"created_at":  "2024-01-05",
		"updated_at":  (*time.Time)(nil),
	})
	rec, err := res.Unwrap()
	if err != nil {
		t.Fatalf("expected ok result, got %v", err)
	}
	if rec.ID != id.String() || rec.Slug != "acme-mlm" || rec.Title != "Acme MLM" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !rec.Published {
		t.Fatal("expected status comparison to ignore case")
	}
	if rec.BodyFormat != FormatHTML {
		t.Fatalf("expected html body format, got %q", rec.BodyFormat)
	}
	if rec.UpdatedAt != nil {
		t.Fatalf("expected nil updated_at, got %v", rec.UpdatedAt)
	}
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := rec.LastModified(time.Now()); !got.Equal(want) {
		t.Fatalf("expected lastmod %v, got %v", want, got)
	}
}

func TestParseRejectsInvalidRows(t *testing.T) {
	def := definition(t, resources.News)
	cases := []Raw{
		nil,
		{"slug": "no-id"},
		{"id": "abc/123"},
		{"id": "abc", "slug": "bad?slug"},
	}
	for _, raw := range cases {
		res := Parse(def, raw)
		if res.IsOk() {
			t.Fatalf("expected invalid result for %v", raw)
		}
		if !errors.Is(res.Reason(), ErrInvalidRecord) {
			t.Fatalf("expected ErrInvalidRecord, got %v", res.Reason())
		}
	}
}

func TestParseBooleanStatus(t *testing.T) {
	def := definition(t, resources.News)
	for value, want := range map[any]bool{true: true, false: false, int64(1): true, "true": true, "no": false} {
		rec, err := Parse(def, Raw{"id": "abc123", "published": value}).Unwrap()
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if rec.Published != want {
			t.Fatalf("published=%v: expected %v", value, want)
		}
	}
	rec, _ := Parse(def, Raw{"id": "abc123"}).Unwrap()
	if rec.Published {
		t.Fatal("missing status must not be published")
	}
}

func TestLastModifiedFallbacks(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)

	if got := (&Record{}).LastModified(now); !got.Equal(now) {
		t.Fatalf("expected now, got %v", got)
	}
	if got := (&Record{CreatedAt: &created}).LastModified(now); !got.Equal(created) {
		t.Fatalf("expected created, got %v", got)
	}
	if got := (&Record{CreatedAt: &created, UpdatedAt: &updated}).LastModified(now); !got.Equal(updated) {
		t.Fatalf("expected updated, got %v", got)
	}
}

func TestCanonicalSlugUsesIDWhenSlugMissing(t *testing.T) {
	if got := (&Record{ID: "abc123"}).CanonicalSlug(); got != "abc123" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}
