package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type refreshMessage struct{}

func (refreshMessage) Type() string { return "seo.sitemap.refresh" }

func (refreshMessage) Validate() error { return nil }

type emptyReslugMessage struct{}

func (emptyReslugMessage) Type() string { return "seo.slugs.reassign.empty" }

func (emptyReslugMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("resource is required")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[refreshMessage](func(ctx context.Context, msg refreshMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), refreshMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[emptyReslugMessage](func(ctx context.Context, msg emptyReslugMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), emptyReslugMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[refreshMessage](func(ctx context.Context, msg refreshMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, refreshMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[refreshMessage](func(ctx context.Context, msg refreshMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), refreshMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[refreshMessage](func(ctx context.Context, msg refreshMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[refreshMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), refreshMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTelemetryReceivesFieldsAndStatus(t *testing.T) {
	var got []TelemetryInfo
	h := NewHandler[refreshMessage](func(ctx context.Context, msg refreshMessage) error {
		return errors.New("boom")
	},
		WithOperation[refreshMessage]("sitemap.regenerate"),
		WithMessageFields(func(refreshMessage) map[string]any { return map[string]any{"document": "sitemap-news"} }),
		WithTelemetry(func(_ context.Context, _ refreshMessage, info TelemetryInfo) { got = append(got, info) }),
	)

	if err := h.Execute(context.Background(), refreshMessage{}); err == nil {
		t.Fatal("expected execution error")
	}
	if len(got) != 1 {
		t.Fatalf("expected one telemetry call, got %d", len(got))
	}
	info := got[0]
	if info.Status != TelemetryStatusFailed || info.Command != "seo.sitemap.refresh" || info.Operation != "sitemap.regenerate" {
		t.Fatalf("unexpected telemetry %+v", info)
	}
	if info.Fields["document"] != "sitemap-news" || info.Fields["operation"] != "sitemap.regenerate" {
		t.Fatalf("expected merged fields, got %+v", info.Fields)
	}
}

func TestHandlerTimeoutReportsContextError(t *testing.T) {
	var status TelemetryStatus
	h := NewHandler[refreshMessage](func(ctx context.Context, msg refreshMessage) error {
		<-ctx.Done()
		return ctx.Err()
	},
		WithTimeout[refreshMessage](5*time.Millisecond),
		WithTelemetry(func(_ context.Context, _ refreshMessage, info TelemetryInfo) { status = info.Status }),
	)

	err := h.Execute(context.Background(), refreshMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if status != TelemetryStatusContextError {
		t.Fatalf("expected context error status, got %q", status)
	}
}
