package records

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-seo/internal/resources"
)

// MemoryStore keeps raw rows per resource type. It accepts any non-empty
// identifier format and enforces slug uniqueness per resource the way a
// unique index would.
type MemoryStore struct {
	mu       sync.RWMutex
	rows     map[resources.Type][]Raw
	failures map[resources.Type]error
	now      func() time.Time
}

var (
	_ Store                = (*MemoryStore)(nil)
	_ IdentifierClassifier = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:     make(map[resources.Type][]Raw),
		failures: make(map[resources.Type]error),
		now:      time.Now,
	}
}

// Insert stores a copy of raw under t.
func (s *MemoryStore) Insert(t resources.Type, raw Raw) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[t] = append(s.rows[t], cloneRaw(raw))
}

// Fail makes every call for t return err until cleared with a nil error.
func (s *MemoryStore) Fail(t resources.Type, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, t)
		return
	}
	s.failures[t] = err
}

// LooksLikeID accepts any non-empty segment.
func (s *MemoryStore) LooksLikeID(segment string) bool {
	return strings.TrimSpace(segment) != ""
}

func (s *MemoryStore) FindBySlug(_ context.Context, def resources.Definition, slug string) (*Record, error) {
	return s.findPublished(def, slug, func(rec *Record) bool { return rec.Slug == slug })
}

func (s *MemoryStore) FindByID(_ context.Context, def resources.Definition, id string) (*Record, error) {
	return s.findPublished(def, id, func(rec *Record) bool { return rec.ID == id })
}

func (s *MemoryStore) ListPublished(_ context.Context, def resources.Definition) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failures[def.Type]; err != nil {
		return nil, err
	}
	var out []*Record
	for _, raw := range s.rows[def.Type] {
		res := Parse(def, raw)
		if !res.IsOk() || !res.Record().Published {
			continue
		}
		out = append(out, res.Record())
	}
	return out, nil
}

func (s *MemoryStore) SlugTaken(_ context.Context, def resources.Definition, slug, exceptID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failures[def.Type]; err != nil {
		return false, err
	}
	return s.slugTakenLocked(def, slug, exceptID), nil
}

func (s *MemoryStore) AssignSlug(_ context.Context, def resources.Definition, id, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures[def.Type]; err != nil {
		return err
	}
	if slug != "" && s.slugTakenLocked(def, slug, id) {
		return ErrSlugConflict
	}
	for _, raw := range s.rows[def.Type] {
		if stringField(raw, "id") != id {
			continue
		}
		if slug == "" {
			raw["slug"] = nil
		} else {
			raw["slug"] = slug
		}
		raw["updated_at"] = s.now()
		return nil
	}
	return &NotFoundError{Resource: string(def.Type), Key: id}
}

func (s *MemoryStore) findPublished(def resources.Definition, key string, match func(*Record) bool) (*Record, error) {
	if strings.TrimSpace(key) == "" {
		return nil, &NotFoundError{Resource: string(def.Type), Key: key}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failures[def.Type]; err != nil {
		return nil, err
	}
	for _, raw := range s.rows[def.Type] {
		res := Parse(def, raw)
		if !res.IsOk() {
			continue
		}
		if rec := res.Record(); rec.Published && match(rec) {
			return rec, nil
		}
	}
	return nil, &NotFoundError{Resource: string(def.Type), Key: key}
}

func (s *MemoryStore) slugTakenLocked(def resources.Definition, slug, exceptID string) bool {
	for _, raw := range s.rows[def.Type] {
		if stringField(raw, "slug") == slug && stringField(raw, "id") != exceptID {
			return true
		}
	}
	return false
}

func cloneRaw(raw Raw) Raw {
	out := make(Raw, len(raw))
	maps.Copy(out, raw)
	return out
}
