package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InjectTraceID returns ctx carrying a logger tagged with a fresh traceId
func InjectTraceID(ctx context.Context) context.Context {
	id := uuid.New().String()
	logger := log.With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

// TraceIDFromHeader reuses an incoming request id when present
func TraceIDFromHeader(ctx context.Context, requestID string) context.Context {
	if _, err := uuid.Parse(requestID); err != nil {
		return InjectTraceID(ctx)
	}
	logger := log.With().Str("traceId", requestID).Logger()
	return logger.WithContext(ctx)
}
