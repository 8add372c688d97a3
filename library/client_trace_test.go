package library_test

import (
	"context"
	"net/http"
	"testing"

	"library-console/library"
	"library-console/library/librarytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func attrValue(span tracetest.SpanStub, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestClientRecordsSpanPerRequest(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	srv := librarytest.NewServer(t)
	c := library.NewClient(srv.URL, srv.Client(), nil, library.WithTracer(provider.Tracer("test")))

	ctx := context.Background()
	require.NoError(t, c.CreateBook(ctx, library.NewBook{Title: "Dune", Author: "Herbert"}))
	_, err := c.GetBook(ctx, "7")
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	created := spans[0]
	assert.Equal(t, "POST /book/create", created.Name)
	assert.Equal(t, trace.SpanKindClient, created.SpanKind)
	status, ok := attrValue(created, "http.response.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusCreated), status.AsInt64())
	traceID, ok := attrValue(created, "trace_id")
	require.True(t, ok)
	assert.NotEmpty(t, traceID.AsString())

	missing := spans[1]
	assert.Equal(t, "GET /book/{id}", missing.Name)
	path, ok := attrValue(missing, "url.path")
	require.True(t, ok)
	assert.Equal(t, "/book/7", path.AsString())
	assert.Equal(t, codes.Error, missing.Status.Code)
}
