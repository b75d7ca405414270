// Package sitemapcmd exposes sitemap regeneration as a go-command message.
package sitemapcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-seo/internal/commands"
	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/internal/sitemap"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// ErrServiceUnavailable is returned when no sitemap service is configured.
var ErrServiceUnavailable = errors.New("sitemapcmd: sitemap service unavailable")

// Regenerator is the part of sitemap.Service the handler needs.
type Regenerator interface {
	RefreshDocument(ctx context.Context, name string) ([]byte, error)
	Emitter() *sitemap.Emitter
}

var _ Regenerator = (*sitemap.Service)(nil)

// RegenerateHandler runs RegenerateSitemapsCommand.
type RegenerateHandler struct {
	inner *commands.Handler[RegenerateSitemapsCommand]
}

// NewRegenerateHandler wires the handler to service.
func NewRegenerateHandler(service Regenerator, logger interfaces.Logger, opts ...commands.HandlerOption[RegenerateSitemapsCommand]) *RegenerateHandler {
	logger = logging.Ensure(logger)

	exec := func(ctx context.Context, msg RegenerateSitemapsCommand) error {
		if service == nil {
			return ErrServiceUnavailable
		}
		names := msg.Documents
		if len(names) == 0 {
			names = service.Emitter().DocumentNames()
		}
		if dir := strings.TrimSpace(msg.OutputDir); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("sitemapcmd: create output dir: %w", err)
			}
		}

		written := make([]Written, 0, len(names))
		var errs []error
		for _, name := range names {
			name = strings.TrimSuffix(strings.TrimSpace(name), ".xml")
			body, err := service.RefreshDocument(ctx, name)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
			entry := Written{Document: name, Bytes: len(body)}
			if dir := strings.TrimSpace(msg.OutputDir); dir != "" {
				entry.Path = filepath.Join(dir, name+".xml")
				if err := os.WriteFile(entry.Path, body, 0o644); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", name, err))
					continue
				}
			}
			written = append(written, entry)
		}
		if msg.Result != nil {
			msg.Result(written)
		}
		return errors.Join(errs...)
	}

	handlerOpts := []commands.HandlerOption[RegenerateSitemapsCommand]{
		commands.WithLogger[RegenerateSitemapsCommand](logger),
		commands.WithOperation[RegenerateSitemapsCommand]("sitemap.regenerate"),
		commands.WithMessageFields(func(msg RegenerateSitemapsCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Documents) > 0 {
				fields["documents"] = len(msg.Documents)
			}
			if msg.OutputDir != "" {
				fields["output_dir"] = msg.OutputDir
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RegenerateSitemapsCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RegenerateHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[RegenerateSitemapsCommand].
func (h *RegenerateHandler) Execute(ctx context.Context, msg RegenerateSitemapsCommand) error {
	return h.inner.Execute(ctx, msg)
}
