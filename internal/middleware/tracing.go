package middleware

import (
	"apix/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request, continuing any trace found in the
// incoming headers, and stores it with the request id in the request's user
// context. It must run inside Metrics so a failed request's error reaches the
// span before the ErrorHandler consumes it.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		carrier := propagation.HeaderCarrier{}
		c.Request().Header.VisitAll(func(key, value []byte) {
			carrier.Set(string(key), string(value))
		})
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Method()),
			attribute.String("http.target", c.OriginalURL()),
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ctx = telemetry.WithRequestID(ctx, rid)
			attrs = append(attrs, attribute.String("http.request_id", rid))
		}

		ctx, span := telemetry.StartSpan(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()
		c.SetUserContext(ctx)

		err := c.Next()
		if err != nil {
			telemetry.RecordError(ctx, err)
		}
		return err
	}
}
