package metadata

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-seo/internal/markdown"
	"github.com/goliatone/go-seo/internal/records"
)

// DefaultDescriptionLength is the target length of synthesized descriptions.
const DefaultDescriptionLength = 160

// boundaryFloor is the lowest index at which a word boundary cut is accepted.
const boundaryFloor = 100

const blockSelectors = "br,p,div,li,h1,h2,h3,h4,h5,h6,tr,td,blockquote,section,article"

// StripMarkup returns the visible text of an HTML fragment with whitespace
// collapsed. Script and style contents are dropped.
func StripMarkup(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseSpace(fragment)
	}
	doc.Find("script,style,noscript").Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml(" ")
	})
	return collapseSpace(doc.Text())
}

// PlainText returns the visible text of a record body, rendering Markdown first.
func PlainText(body, format string) string {
	if format == records.FormatMarkdown {
		if rendered, err := markdown.ToHTML([]byte(body)); err == nil {
			body = string(rendered)
		}
	}
	return StripMarkup(body)
}

// TruncateDescription shortens text to at most n runes. It cuts at the last
// whitespace at or before n when that whitespace sits at index 100 or later
// (any index when n <= 100), and cuts exactly at n otherwise.
func TruncateDescription(text string, n int) string {
	text = collapseSpace(text)
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	floor := boundaryFloor
	if n <= boundaryFloor {
		floor = 1
	}
	for i := n; i >= floor; i-- {
		if unicode.IsSpace(runes[i]) {
			return strings.TrimRightFunc(string(runes[:i]), unicode.IsSpace)
		}
	}
	return string(runes[:n])
}

// Keywords splits a comma separated override list. Without an override no
// keywords are emitted; otherwise the focus keyword, when set, comes first.
// Entries are trimmed and de-duplicated case-insensitively.
func Keywords(override, focus string) []string {
	var parts []string
	for _, part := range strings.Split(override, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	out := make([]string, 0, len(parts)+1)
	seen := map[string]struct{}{}
	add := func(value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, value)
	}
	add(focus)
	for _, part := range parts {
		add(part)
	}
	return out
}

func collapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
