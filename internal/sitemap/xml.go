package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	xmlns      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	dateLayout = "2006-01-02"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []indexEntry `xml:"sitemap"`
}

type indexEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type errorDocument struct {
	XMLName xml.Name `xml:"error"`
	Code    int      `xml:"code"`
	Message string   `xml:"message"`
}

func lastmod(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func priority(value float64) string {
	if value <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", value)
}

// normalizeEntries sorts entries by location and keeps the first of each duplicate.
func normalizeEntries(entries []urlEntry) []urlEntry {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Loc < entries[j].Loc })
	out := entries[:0]
	for i, entry := range entries {
		if i > 0 && entry.Loc == out[len(out)-1].Loc {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ErrorDocument renders the XML payload served with a 500 when a sitemap
// cannot be produced. The error text is never included.
func ErrorDocument(err error) []byte {
	message := "sitemap unavailable"
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		message = "sitemap generation timed out"
	}
	body, encErr := encode(errorDocument{Code: 500, Message: message})
	if encErr != nil {
		return []byte(xml.Header + "<error><code>500</code><message>sitemap unavailable</message></error>\n")
	}
	return body
}
