package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestLooksLikeID(t *testing.T) {
	matches := []string{
		"11111111-1111-1111-1111-111111111111",
		"A0EEBC99-9C0B-4EF8-BB6D-6BB9BD380A11",
		"a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11",
	}
	for _, value := range matches {
		if !LooksLikeID(value) {
			t.Fatalf("expected %q to look like an id", value)
		}
	}

	misses := []string{
		"",
		"acme-mlm",
		"abc123",
		"11111111111111111111111111111111",
		"11111111-1111-1111-1111-11111111111g",
		" 11111111-1111-1111-1111-111111111111",
	}
	for _, value := range misses {
		if LooksLikeID(value) {
			t.Fatalf("expected %q not to look like an id", value)
		}
	}
}

func TestUUIDIsDeterministic(t *testing.T) {
	first := RecordUUID("company", "acme")
	second := RecordUUID("Company", " acme ")
	if first == uuid.Nil || first != second {
		t.Fatalf("expected stable id, got %s and %s", first, second)
	}
	if RecordUUID("blog", "acme") == first {
		t.Fatal("expected resource prefix to separate ids")
	}
	if UUID("   ") != uuid.Nil {
		t.Fatal("expected nil uuid for blank key")
	}
}

func TestETag(t *testing.T) {
	if ETag(nil) != "" {
		t.Fatal("expected empty tag for empty body")
	}
	a := ETag([]byte("<urlset/>"))
	if a == "" || a != ETag([]byte("<urlset/>")) {
		t.Fatalf("expected stable tag, got %q", a)
	}
	if a == ETag([]byte("<urlset></urlset>")) {
		t.Fatal("expected different bodies to produce different tags")
	}
}
