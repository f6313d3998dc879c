package restyutil

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentOutput receives one rendered request/response exchange
// per request the instrumented client makes at debug level.
type InstrumentOutput interface {
	Write(id string, contents string)
}

type requestIdKey struct{}

// InstrumentClient hangs a span, debug logs and an exchange dump off
// every request the client makes. A nil tracer falls back to a
// library-wide one, a nil output makes the whole thing a no-op.
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output InstrumentOutput) {
	if output == nil {
		return
	}
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	var requestId atomic.Uint64

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), "http "+req.Method)
		if slog.Default().Enabled(ctx, slog.LevelDebug) {
			id := strconv.FormatUint(requestId.Add(1), 10)
			slog.DebugContext(ctx, "start request",
				"method", req.Method, "url", req.URL, "request_id", id)
			ctx = context.WithValue(ctx, requestIdKey{}, id)
		}
		req.SetContext(ctx)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		ctx := res.Request.Context()
		span := trace.SpanFromContext(ctx)
		defer span.End()

		// RawRequest is only populated once the request has run,
		// request attributes cannot be set in OnBeforeRequest
		span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
		span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)

		if id, ok := ctx.Value(requestIdKey{}).(string); ok {
			output.Write(id, formatExchange(res))
			slog.DebugContext(ctx, "request finished",
				"status", res.StatusCode(), "url", res.Request.URL, "request_id", id)
		}
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		ctx := req.Context()
		span := trace.SpanFromContext(ctx)
		defer span.End()

		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		if req.RawRequest != nil {
			span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
		}
		slog.ErrorContext(ctx, "request failed",
			"method", req.Method, "url", req.URL, "err", err)
	})
}
