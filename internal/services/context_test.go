package services_test

import (
	"context"
	"testing"

	"slidedeck/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithLifecycle(ctx, "extraction")
	ctx = services.WithDocument(ctx, "deck.pptx")
	ctx = services.WithRequestID(ctx, "req-123")

	if lifecycle, ok := services.LifecycleFromContext(ctx); !ok || lifecycle != "extraction" {
		t.Fatalf("unexpected lifecycle: %v %v", lifecycle, ok)
	}
	if name, ok := services.DocumentFromContext(ctx); !ok || name != "deck.pptx" {
		t.Fatalf("unexpected document: %v %v", name, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithLifecycle(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.LifecycleFromContext(ctx); ok {
		t.Fatal("expected no lifecycle value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}
