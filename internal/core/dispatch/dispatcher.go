// Package dispatch routes a request value to the single handler registered
// for its name.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"taskapi/internal/core/port"
	tel "taskapi/internal/core/telemetry"
)

var (
	ErrHandlerNotRegistered = errors.New("dispatch: no handler registered")
	ErrDuplicateHandler     = errors.New("dispatch: handler already registered")
	ErrUnexpectedRequest    = errors.New("dispatch: unexpected request type")
	ErrUnexpectedResponse   = errors.New("dispatch: unexpected response type")
)

// Request is implemented by every command and query. The name must be
// constant for a given type.
type Request interface {
	RequestName() string
}

type HandlerFunc func(ctx context.Context, req Request) (any, error)

type Dispatcher struct {
	mu        sync.RWMutex
	handlers  map[string]HandlerFunc
	telemetry port.Telemetry
}

func New(telemetry port.Telemetry) *Dispatcher {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &Dispatcher{
		handlers:  make(map[string]HandlerFunc),
		telemetry: telemetry,
	}
}

// Register binds fn to the name of Req. Registering a second handler for the
// same name fails with ErrDuplicateHandler.
func Register[Req Request, Res any](d *Dispatcher, fn func(ctx context.Context, req Req) (Res, error)) error {
	var zero Req
	name := zero.RequestName()

	handler := func(ctx context.Context, req Request) (any, error) {
		typed, ok := req.(Req)

		if !ok {
			return nil, fmt.Errorf("%w: %s got %T", ErrUnexpectedRequest, name, req)
		}

		return fn(ctx, typed)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}

	d.handlers[name] = handler

	return nil
}

// Dispatch runs the handler registered for req and returns its result as is.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (any, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrHandlerNotRegistered)
	}

	name := req.RequestName()

	d.mu.RLock()
	handler, ok := d.handlers[name]
	d.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotRegistered, name)
	}

	ctx, span := d.telemetry.StartDispatchSpan(ctx, name)
	defer span.End()

	start := time.Now()
	res, err := handler(ctx, req)
	d.telemetry.RecordDispatch(ctx, name, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
	} else {
		span.SetStatus("ok", "")
	}

	return res, err
}

// Send dispatches req and asserts the result type.
func Send[Res any](ctx context.Context, d *Dispatcher, req Request) (Res, error) {
	var zero Res

	res, err := d.Dispatch(ctx, req)

	if err != nil {
		return zero, err
	}

	if res == nil {
		return zero, nil
	}

	typed, ok := res.(Res)

	if !ok {
		return zero, fmt.Errorf("%w: %s returned %T", ErrUnexpectedResponse, req.RequestName(), res)
	}

	return typed, nil
}

// Require reports every request in reqs that has no handler. It is meant to
// run once at startup.
func (d *Dispatcher) Require(reqs ...Request) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var missing []string

	for _, req := range reqs {
		if _, ok := d.handlers[req.RequestName()]; !ok {
			missing = append(missing, req.RequestName())
		}
	}

	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)

	return fmt.Errorf("%w: %v", ErrHandlerNotRegistered, missing)
}

func (d *Dispatcher) Registered() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))

	for name := range d.handlers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
