package port

import (
	"context"
	"time"
)

// Span is the slice of a tracing span the core needs.
type Span interface {
	End()
	SetAttributes(attrs map[string]interface{})
	SetStatus(code string, message string)
	RecordError(err error)
}

// Telemetry lets the core emit traces, metrics and business events without
// knowing which backend receives them.
type Telemetry interface {
	// Tracing
	StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, Span)
	StartDispatchSpan(ctx context.Context, request string) (context.Context, Span)

	// Repository operations
	RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error)
	RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{})

	// Dispatch
	RecordDispatch(ctx context.Context, request string, duration time.Duration, err error)

	// Business events
	RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{})

	// Cache
	RecordCacheLookup(ctx context.Context, entity string, hit bool)

	// HTTP operations
	RecordHTTPOperation(ctx context.Context, method string, path string, statusCode int, duration time.Duration)

	// Errors
	RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{})
}
