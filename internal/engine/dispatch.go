package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Handler is one conversion routine: a stateless, concurrency-safe function
// over (inputs, options). Handlers may fail with ordinary errors; the
// dispatcher is the single boundary that reclassifies them.
type Handler func(ctx context.Context, req *OperationRequest) (*ConversionResult, error)

// Dispatcher routes a validated OperationRequest to exactly one handler.
// The handler table is populated once at startup from a literal mapping and
// is read-only afterwards.
type Dispatcher struct {
	handlers map[string]Handler
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher over a literal handler table.
func NewDispatcher(handlers map[string]Handler, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{handlers: handlers, logger: logger}
}

// HasHandler reports whether a handler is registered for the tool id. Used
// at startup to assert the registry and the handler table are in lock-step.
func (d *Dispatcher) HasHandler(toolID string) bool {
	_, ok := d.handlers[toolID]
	return ok
}

// Dispatch invokes the matching handler and captures its outcome uniformly.
// Panics and errors never cross this boundary: a wrapped
// ErrMissingDependency becomes missing-dependency, anything else becomes
// processing-failure with the cause logged but not exposed verbatim.
func (d *Dispatcher) Dispatch(ctx context.Context, req *OperationRequest) (result *ConversionResult, opErr *OperationError) {
	handler, ok := d.handlers[req.ToolID]
	if !ok {
		// Registry and handler table are kept in lock-step, so this is a
		// defensive check only.
		return nil, BadInput(fmt.Sprintf("no handler for tool %q", req.ToolID))
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("tool", req.ToolID).
				Interface("panic", r).
				Msg("conversion routine panicked")
			result = nil
			opErr = &OperationError{
				Kind:    KindProcessingFailure,
				Message: "processing failed for this tool",
			}
		}
	}()

	res, err := handler(ctx, req)
	if err != nil {
		var oe *OperationError
		if errors.As(err, &oe) {
			// Handlers occasionally classify their own failures, e.g. a
			// required free-text option the schema cannot enforce.
			return nil, oe
		}
		if errors.Is(err, ErrMissingDependency) {
			d.logger.Warn().
				Str("tool", req.ToolID).
				Err(err).
				Msg("optional dependency unavailable")
			return nil, &OperationError{
				Kind:    KindMissingDependency,
				Message: err.Error(),
			}
		}
		d.logger.Error().
			Str("tool", req.ToolID).
			Err(err).
			Msg("conversion failed")
		return nil, &OperationError{
			Kind:    KindProcessingFailure,
			Message: "processing failed for this tool",
		}
	}
	return res, nil
}
