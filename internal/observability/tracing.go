package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	dbTracerName      = "proxitrace/db"
	ingestTracerName  = "proxitrace/ingest"
	requestIDKey      = contextKey("observability.request_id")
	routeKey          = contextKey("observability.route")
	batchSourceKey    = contextKey("observability.batch_source")
	defaultQueryLabel = "unknown"
)

type contextKey string

// Span is the application-level tracing span contract.
type Span interface {
	End()
	RecordError(error)
	SetInt(key string, value int64)
}

type otelSpan struct {
	inner trace.Span
}

// StartDBSpan starts a database tracing span for one query operation.
func StartDBSpan(ctx context.Context, queryName, operation string) (context.Context, Span) {
	queryName = strings.TrimSpace(queryName)
	if queryName == "" {
		queryName = defaultQueryLabel
	}
	attrs := []attribute.KeyValue{
		attribute.String("db.system.name", "sqlite"),
		attribute.String("db.query_name", queryName),
		attribute.String("db.operation", strings.TrimSpace(operation)),
	}
	if source, ok := BatchSourceFromContext(ctx); ok {
		attrs = append(attrs, attribute.String("proxitrace.batch_source", source))
	}

	ctx, span := otel.Tracer(dbTracerName).Start(ctx, "db."+queryName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return ctx, otelSpan{inner: span}
}

// StartIngestSpan starts a span covering aggregation and storage of one handshake batch.
func StartIngestSpan(ctx context.Context, source string, handshakes int) (context.Context, Span) {
	ctx = WithBatchSource(ctx, source)
	ctx, span := otel.Tracer(ingestTracerName).Start(ctx, "ingest.handshakes",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("proxitrace.batch_source", strings.TrimSpace(source)),
			attribute.Int("proxitrace.handshakes", handshakes),
		),
	)
	return ctx, otelSpan{inner: span}
}

// WithBatchSource tags the context with the origin of a handshake batch.
func WithBatchSource(ctx context.Context, source string) context.Context {
	source = strings.TrimSpace(source)
	if source == "" {
		return ctx
	}
	return context.WithValue(ctx, batchSourceKey, source)
}

// BatchSourceFromContext extracts the handshake batch origin.
func BatchSourceFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(batchSourceKey).(string)
	return value, ok && value != ""
}

// WithRequestMetadata enriches context and current span with request metadata.
func WithRequestMetadata(ctx context.Context, requestID, route string) context.Context {
	requestID = strings.TrimSpace(requestID)
	route = strings.TrimSpace(route)
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	if route != "" {
		ctx = context.WithValue(ctx, routeKey, route)
	}
	setSpanRequestAttributes(ctx, requestID, route)
	return ctx
}

// RequestIDFromContext extracts request id.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(requestIDKey).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

// RouteFromContext extracts normalized route path.
func RouteFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(routeKey).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func setSpanRequestAttributes(ctx context.Context, requestID, route string) {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return
	}
	attrs := make([]attribute.KeyValue, 0, 2)
	if requestID != "" {
		attrs = append(attrs, attribute.String("request.id", requestID))
	}
	if route != "" {
		attrs = append(attrs, attribute.String("http.route", route))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func (s otelSpan) End() {
	if s.inner == nil {
		return
	}
	s.inner.End()
}

func (s otelSpan) RecordError(err error) {
	if s.inner == nil || err == nil {
		return
	}
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}

func (s otelSpan) SetInt(key string, value int64) {
	if s.inner == nil {
		return
	}
	s.inner.SetAttributes(attribute.Int64(key, value))
}
