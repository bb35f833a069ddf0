package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// OtelTracing instruments /api/ requests only, to keep health checks and
// swagger out of the trace stream.
func OtelTracing(serviceName string) gin.HandlerFunc {
	otelMiddleware := otelgin.Middleware(serviceName)

	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			otelMiddleware(c)
		} else {
			c.Next()
		}
	}
}

// TraceID exposes the current trace ID on the response for log correlation.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			c.Header("X-Trace-Id", span.SpanContext().TraceID().String())
		}
		c.Next()
	}
}
