package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block of a page file.
type FrontMatter struct {
	Title       string    `yaml:"title"`
	Path        string    `yaml:"path"`
	Description string    `yaml:"description"`
	Keywords    []string  `yaml:"keywords"`
	ChangeFreq  string    `yaml:"changefreq"`
	Priority    float64   `yaml:"priority"`
	Updated     time.Time `yaml:"updated"`
	Draft       bool      `yaml:"draft"`
}

// ParseFrontMatter splits source into its frontmatter and Markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Path = strings.TrimSpace(meta.Path)
	meta.Description = strings.TrimSpace(meta.Description)
	meta.ChangeFreq = strings.ToLower(strings.TrimSpace(meta.ChangeFreq))
	return meta, body, nil
}
