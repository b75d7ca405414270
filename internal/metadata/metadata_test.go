package metadata

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/resources"
)

func lookup(t *testing.T, typ resources.Type) resources.Definition {
	t.Helper()
	def, err := resources.DefaultRegistry().Lookup(typ)
	if err != nil {
		t.Fatalf("lookup %s: %v", typ, err)
	}
	return def
}

func TestTruncateDescriptionCutsAtWordBoundary(t *testing.T) {
	words := strings.Repeat("lorem ipsum ", 30)
	got := TruncateDescription(words, 160)
	if utf8.RuneCountInString(got) > 160 {
		t.Fatalf("expected at most 160 runes, got %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "lorem") && !strings.HasSuffix(got, "ipsum") {
		t.Fatalf("expected whole word at the end, got %q", got)
	}
	if !strings.HasPrefix(words, got) {
		t.Fatalf("expected prefix of input, got %q", got)
	}
}

func TestTruncateDescriptionBoundaryAtLimit(t *testing.T) {
	text := strings.Repeat("a", 150) + " " + strings.Repeat("b", 20)
	if got := TruncateDescription(text, 150); got != strings.Repeat("a", 150) {
		t.Fatalf("expected cut at whitespace right after the limit, got %q", got)
	}
}

func TestTruncateDescriptionExactCutWithoutBoundary(t *testing.T) {
	text := "short " + strings.Repeat("x", 300)
	got := TruncateDescription(text, 160)
	if utf8.RuneCountInString(got) != 160 {
		t.Fatalf("expected exact cut at 160, got %d", utf8.RuneCountInString(got))
	}
	if got != text[:160] {
		t.Fatalf("unexpected exact cut %q", got)
	}
}

func TestTruncateDescriptionShortInputUnchanged(t *testing.T) {
	if got := TruncateDescription("  A   short\ttext ", 160); got != "A short text" {
		t.Fatalf("expected collapsed input, got %q", got)
	}
	if got := TruncateDescription("two words", 4); got != "two" {
		t.Fatalf("expected small limits to cut at any boundary, got %q", got)
	}
}

func TestStripMarkup(t *testing.T) {
	html := `<h2>Intro</h2><p>Hello <strong>world</strong> &amp; friends</p><script>alert(1)</script><ul><li>one</li><li>two</li></ul>`
	if got := StripMarkup(html); got != "Intro Hello world & friends one two" {
		t.Fatalf("unexpected stripped text %q", got)
	}
}

func TestPlainTextRendersMarkdown(t *testing.T) {
	if got := PlainText("# Heading\n\nSome **bold** text", records.FormatMarkdown); got != "Heading Some bold text" {
		t.Fatalf("unexpected markdown text %q", got)
	}
}

func TestKeywords(t *testing.T) {
	got := Keywords(" mlm, , Direct Selling ,MLM,wellness", "Herbalife")
	want := []string{"Herbalife", "mlm", "Direct Selling", "wellness"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if Keywords("", "") != nil {
		t.Fatal("expected nil keywords when nothing is set")
	}
	if got := Keywords("", "Herbalife"); got != nil {
		t.Fatalf("expected no keywords without an override, got %v", got)
	}
	if got := Keywords(" , ", "Herbalife"); got != nil {
		t.Fatalf("expected blank override to emit no keywords, got %v", got)
	}
}

func TestSynthesizeBlogPosting(t *testing.T) {
	created := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	rec := &records.Record{
		ID:           "b-1",
		Title:        "Hello World",
		Body:         "<p>" + strings.Repeat("word ", 60) + "</p>",
		MetaKeywords: "a, b",
		ImageURL:     "https://cdn.example.com/cover.png",
		Author:       "Jane",
		CreatedAt:    &created,
	}
	meta := Synthesize(lookup(t, resources.Blog), rec, "https://example.com/blog/hello-world/b-1", Options{SiteName: "MLM Directory"})

	if meta.Title != "Hello World | MLM Directory" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if n := utf8.RuneCountInString(meta.Description); n == 0 || n > DefaultDescriptionLength {
		t.Fatalf("unexpected description length %d", n)
	}
	if meta.StructuredData["@type"] != "BlogPosting" || meta.StructuredData["headline"] != "Hello World" {
		t.Fatalf("unexpected structured data %v", meta.StructuredData)
	}
	if meta.StructuredData["datePublished"] != "2024-01-05T09:00:00Z" {
		t.Fatalf("unexpected datePublished %v", meta.StructuredData["datePublished"])
	}
	if _, ok := meta.StructuredData["dateModified"]; ok {
		t.Fatal("expected missing updated_at to be omitted")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(meta.JSONLD()), &decoded); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if decoded["url"] != "https://example.com/blog/hello-world/b-1" {
		t.Fatalf("expected canonical url in JSON-LD, got %v", decoded["url"])
	}
}

func TestSynthesizeOrganizationPrefersOverride(t *testing.T) {
	rec := &records.Record{
		Title:           "Acme MLM",
		Body:            "<p>ignored</p>",
		MetaDescription: "Acme override",
		Country:         "India",
	}
	meta := Synthesize(lookup(t, resources.Company), rec, "https://example.com/company/india/acme-mlm", Options{})
	if meta.Description != "Acme override" {
		t.Fatalf("expected override description, got %q", meta.Description)
	}
	if meta.StructuredData["@type"] != "Organization" || meta.StructuredData["name"] != "Acme MLM" {
		t.Fatalf("unexpected structured data %v", meta.StructuredData)
	}
	address, ok := meta.StructuredData["address"].(map[string]any)
	if !ok || address["addressCountry"] != "India" {
		t.Fatalf("expected postal address, got %v", meta.StructuredData["address"])
	}
	if _, ok := meta.StructuredData["logo"]; ok {
		t.Fatal("expected missing logo to be omitted")
	}
}

func TestSynthesizeProductOffer(t *testing.T) {
	rec := &records.Record{Title: "Starter kit", Price: "49.99"}
	meta := Synthesize(lookup(t, resources.Classified), rec, "https://example.com/classifieds/starter-kit", Options{})
	offer, ok := meta.StructuredData["offers"].(map[string]any)
	if !ok || offer["price"] != "49.99" {
		t.Fatalf("expected offer, got %v", meta.StructuredData)
	}
}

func TestSynthesizeNilRecordDegrades(t *testing.T) {
	meta := Synthesize(lookup(t, resources.News), nil, "", Options{SiteName: "MLM Directory"})
	if meta.Title != "MLM Directory" || meta.JSONLD() != "" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
}
