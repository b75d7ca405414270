package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-seo/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "seo.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"foo": "bar"})
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger after WithFields, got %T", logger)
	}
	logger.Debug("noop")
}

func TestGateLoggerRequestsGateModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	GateLogger(provider).Info("gate.render")

	if len(provider.requested) != 1 || provider.requested[0] != gateModule {
		t.Fatalf("expected module %s, got %v", gateModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != gateModule {
		t.Fatalf("expected module field %s, got %v", gateModule, rec.fields)
	}
}

func TestEmptyModuleUsesRoot(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	ModuleLogger(provider, "")
	if provider.requested[0] != rootModule {
		t.Fatalf("expected root module, got %v", provider.requested)
	}
}

func TestWithLookupSkipsBlankValues(t *testing.T) {
	rec := &recordingLogger{}

	WithLookup(rec, "blog", "  ", "post-1")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldResource] != "blog" || got[fieldRecordID] != "post-1" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got[fieldSegment]; ok {
		t.Fatalf("blank segment should be skipped: %v", got)
	}
}

func TestWithLookupNoFieldsLeavesLoggerUntouched(t *testing.T) {
	rec := &recordingLogger{}
	if WithLookup(rec, "", "", "") != rec {
		t.Fatal("expected logger returned as-is")
	}
	if len(rec.fields) != 0 {
		t.Fatalf("expected no fields applied, got %v", rec.fields)
	}
}

func TestEnsureReplacesNil(t *testing.T) {
	if Ensure(nil) == nil {
		t.Fatal("expected noop logger")
	}
}
