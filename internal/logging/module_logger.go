package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-seo/pkg/interfaces"
)

const (
	rootModule     = "seo"
	resolverModule = "seo.resolver"
	gateModule     = "seo.gate"
	sitemapModule  = "seo.sitemap"
	reslugModule   = "seo.reslug"
	httpModule     = "seo.http"
)

const (
	fieldResource = "resource"
	fieldSegment  = "segment"
	fieldRecordID = "record_id"
)

// ModuleLogger returns a module-scoped logger annotated with the module name.
// A nil provider yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ResolverLogger returns the logger namespace reserved for canonical lookups.
func ResolverLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resolverModule)
}

// GateLogger returns the logger namespace reserved for redirect decisions.
func GateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, gateModule)
}

// SitemapLogger returns the logger namespace reserved for sitemap emission.
func SitemapLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sitemapModule)
}

// ReslugLogger returns the logger namespace reserved for slug reassignment.
func ReslugLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, reslugModule)
}

// HTTPLogger returns the logger namespace reserved for the public handlers.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithFields attaches structured fields when the logger implements
// interfaces.FieldsLogger. Empty maps are ignored.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// WithLookup enriches the logger with the resource type, requested segment
// and record id of a canonical lookup. Empty values are skipped.
func WithLookup(logger interfaces.Logger, resource, segment, recordID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(resource); trimmed != "" {
		fields[fieldResource] = trimmed
	}
	if trimmed := strings.TrimSpace(segment); trimmed != "" {
		fields[fieldSegment] = trimmed
	}
	if trimmed := strings.TrimSpace(recordID); trimmed != "" {
		fields[fieldRecordID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

// Ensure returns logger, or a no-op logger when nil.
func Ensure(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}
