package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelCodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"taskboard/pkg/logger"
)

func InitTracer(endpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxExportBatchSize(10),
		),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("taskboard"),
			attribute.String("environment", "development"),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Logger.Info("Tracer provider initialized")
	return tp, nil
}

// Tracing opens one server span per request and logs completion with the
// trace ids, mirroring the request log shape used elsewhere in the service.
func Tracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			ctx, span := otel.Tracer("http").Start(ctx, req.Method+" "+c.Path(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(req.Method),
					semconv.HTTPRouteKey.String(c.Path()),
				))
			defer span.End()

			c.SetRequest(req.WithContext(ctx))

			startTime := time.Now()
			logger.Logger.Debug("Starting request",
				zap.String("method", req.Method),
				zap.String("route", c.Path()),
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)

			err := next(c)
			duration := time.Since(startTime)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
				span.SetStatus(otelCodes.Error, err.Error())
				span.RecordError(err)
			} else if status >= 500 {
				span.SetStatus(otelCodes.Error, "server error")
			} else {
				span.SetStatus(otelCodes.Ok, "OK")
			}

			span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(status))

			logger.Logger.Info("Request completed",
				zap.String("method", req.Method),
				zap.String("route", c.Path()),
				zap.Int("status", status),
				zap.Duration("duration", duration),
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
				zap.Error(err),
			)

			return err
		}
	}
}
