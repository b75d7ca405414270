// Package slugscmd exposes slug reassignment as a go-command message.
package slugscmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-seo/internal/commands"
	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/internal/reslug"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// ErrServiceUnavailable is returned when no reslug service is configured.
var ErrServiceUnavailable = errors.New("slugscmd: reslug service unavailable")

// Reassigner is implemented by reslug.Service.
type Reassigner interface {
	Reassign(ctx context.Context, t resources.Type, id, title string) (reslug.Result, error)
}

var _ Reassigner = (*reslug.Service)(nil)

// ReassignHandler runs ReassignSlugCommand.
type ReassignHandler struct {
	inner *commands.Handler[ReassignSlugCommand]
}

// NewReassignHandler wires the handler to service.
func NewReassignHandler(service Reassigner, logger interfaces.Logger, opts ...commands.HandlerOption[ReassignSlugCommand]) *ReassignHandler {
	logger = logging.Ensure(logger)

	exec := func(ctx context.Context, msg ReassignSlugCommand) error {
		if service == nil {
			return ErrServiceUnavailable
		}
		t, err := resources.ParseType(msg.Resource)
		if err != nil {
			return err
		}
		result, err := service.Reassign(ctx, t, msg.ID, msg.Title)
		if err != nil {
			return err
		}
		if msg.Result != nil {
			msg.Result(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ReassignSlugCommand]{
		commands.WithLogger[ReassignSlugCommand](logger),
		commands.WithOperation[ReassignSlugCommand]("slugs.reassign"),
		commands.WithMessageFields(func(msg ReassignSlugCommand) map[string]any {
			return map[string]any{"resource": msg.Resource, "record_id": msg.ID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReassignSlugCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReassignHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ReassignSlugCommand].
func (h *ReassignHandler) Execute(ctx context.Context, msg ReassignSlugCommand) error {
	return h.inner.Execute(ctx, msg)
}
