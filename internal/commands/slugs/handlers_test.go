package slugscmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/reslug"
	"github.com/goliatone/go-seo/internal/resources"
)

func TestReassignHandlerAssignsSlug(t *testing.T) {
	store := records.NewMemoryStore()
	store.Insert(resources.Company, records.Raw{"id": "c1", "slug": "acme", "status": "approved"})
	store.Insert(resources.Company, records.Raw{"id": "c2", "slug": "old", "status": "approved"})

	var result reslug.Result
	handler := NewReassignHandler(reslug.NewService(store, nil), nil)
	err := handler.Execute(context.Background(), ReassignSlugCommand{
		Resource: "companies",
		ID:       "c2",
		Title:    "ACME",
		Result:   func(r reslug.Result) { result = r },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Slug != "acme-2" || result.Type != resources.Company {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestReassignHandlerValidation(t *testing.T) {
	handler := NewReassignHandler(reslug.NewService(records.NewMemoryStore(), nil), nil)
	cases := []ReassignSlugCommand{
		{Resource: "widget", ID: "x", Title: "t"},
		{Resource: "blog", Title: "t"},
		{Resource: "blog", ID: "a/b", Title: "t"},
	}
	for _, msg := range cases {
		if err := handler.Execute(context.Background(), msg); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Fatalf("expected validation error for %+v, got %v", msg, err)
		}
	}
}

func TestReassignHandlerWrapsServiceErrors(t *testing.T) {
	handler := NewReassignHandler(reslug.NewService(records.NewMemoryStore(), nil), nil)
	err := handler.Execute(context.Background(), ReassignSlugCommand{Resource: "news", ID: "missing", Title: "Hello"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command error, got %v", err)
	}
}
