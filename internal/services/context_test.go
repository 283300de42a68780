package services_test

import (
	"context"
	"testing"

	"podcastctl/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithPodcastID(ctx, "abc")
	ctx = services.WithOperation(ctx, "status")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.PodcastIDFromContext(ctx); !ok || id != "abc" {
		t.Fatalf("unexpected podcast id: %v %v", id, ok)
	}
	if op, ok := services.OperationFromContext(ctx); !ok || op != "status" {
		t.Fatalf("unexpected operation: %v %v", op, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithOperation(ctx, "")
	ctx = services.WithPodcastID(ctx, "")
	if _, ok := services.OperationFromContext(ctx); ok {
		t.Fatal("expected no operation value")
	}
	if _, ok := services.PodcastIDFromContext(ctx); ok {
		t.Fatal("expected no podcast id value")
	}
}
