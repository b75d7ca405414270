package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// Document is a parsed page file.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	HTML         []byte
	LastModified time.Time
}

// Loader reads Markdown documents from a filesystem.
type Loader struct {
	fs       fs.FS
	pattern  string
	renderer *Renderer
}

// NewLoader builds a loader over filesystem matching pattern, "*.md" by default.
func NewLoader(filesystem fs.FS, pattern string) *Loader {
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{fs: filesystem, pattern: pattern, renderer: defaultRenderer}
}

// LoadFile parses and renders a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", name, err)
	}
	rendered, err := l.renderer.Render(body)
	if err != nil {
		return nil, err
	}
	return &Document{
		FilePath:     name,
		FrontMatter:  meta,
		Body:         body,
		HTML:         rendered,
		LastModified: info.ModTime(),
	}, nil
}

// LoadAll walks the filesystem and returns every matching document sorted by path.
func (l *Loader) LoadAll(ctx context.Context) ([]*Document, error) {
	var docs []*Document
	err := fs.WalkDir(l.fs, ".", func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if match, _ := path.Match(l.pattern, path.Base(name)); !match {
			return nil
		}
		doc, err := l.LoadFile(ctx, name)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].FilePath < docs[j].FilePath })
	return docs, nil
}
