package records

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-seo/internal/resources"
)

func TestMemoryStoreFiltersUnpublished(t *testing.T) {
	ctx := context.Background()
	def := definition(t, resources.News)
	store := NewMemoryStore()
	store.Insert(resources.News, Raw{"id": "n1", "slug": "launch", "published": true})
	store.Insert(resources.News, Raw{"id": "n2", "slug": "draft", "published": false})

	rec, err := store.FindBySlug(ctx, def, "launch")
	if err != nil || rec.ID != "n1" {
		t.Fatalf("expected n1, got %+v (%v)", rec, err)
	}
	if _, err := store.FindBySlug(ctx, def, "draft"); !IsNotFound(err) {
		t.Fatalf("expected not found for unpublished row, got %v", err)
	}
	if _, err := store.FindByID(ctx, def, "n2"); !IsNotFound(err) {
		t.Fatalf("expected not found by id for unpublished row, got %v", err)
	}
	if _, err := store.FindBySlug(ctx, def, ""); !IsNotFound(err) {
		t.Fatalf("expected not found for empty slug, got %v", err)
	}

	list, err := store.ListPublished(ctx, def)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one published record, got %d (%v)", len(list), err)
	}
}

func TestMemoryStoreAssignSlugEnforcesUniqueness(t *testing.T) {
	ctx := context.Background()
	def := definition(t, resources.Blog)
	store := NewMemoryStore()
	store.Insert(resources.Blog, Raw{"id": "b1", "slug": "hello", "status": "published"})
	store.Insert(resources.Blog, Raw{"id": "b2", "status": "published"})

	if err := store.AssignSlug(ctx, def, "b2", "hello"); !errors.Is(err, ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}
	taken, err := store.SlugTaken(ctx, def, "hello", "b1")
	if err != nil || taken {
		t.Fatalf("own slug should not count as taken, got %v (%v)", taken, err)
	}
	if err := store.AssignSlug(ctx, def, "b2", "hello-2"); err != nil {
		t.Fatalf("AssignSlug: %v", err)
	}
	rec, err := store.FindBySlug(ctx, def, "hello-2")
	if err != nil || rec.ID != "b2" || rec.UpdatedAt == nil {
		t.Fatalf("expected reassigned record, got %+v (%v)", rec, err)
	}
	if err := store.AssignSlug(ctx, def, "missing", "x"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStoreInjectedFailure(t *testing.T) {
	ctx := context.Background()
	def := definition(t, resources.Classified)
	store := NewMemoryStore()
	boom := errors.New("connection reset")
	store.Fail(resources.Classified, boom)

	if _, err := store.FindBySlug(ctx, def, "x"); !errors.Is(err, boom) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	store.Fail(resources.Classified, nil)
	if _, err := store.ListPublished(ctx, def); err != nil {
		t.Fatalf("expected failure cleared, got %v", err)
	}
}
