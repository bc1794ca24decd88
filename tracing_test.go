package linearcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestVerifyRecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	v := New(WithLogger(quietVerifier().logger), WithTracer(tp.Tracer("test")))
	v.Verify("x,y", "(2*x, 3*y)")
	v.Verify("x", "")

	spans := rec.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "linearcheck.Verify", ok.Name())
	assert.Equal(t, codes.Unset, ok.Status().Code)
	assert.Contains(t, ok.Attributes(), attribute.Bool("linearcheck.linear", true))
	assert.Contains(t, ok.Attributes(), attribute.Int("linearcheck.components", 2))

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, string(KindInput), failed.Status().Description)
	require.NotEmpty(t, failed.Events())
	assert.Equal(t, "exception", failed.Events()[0].Name)
}
