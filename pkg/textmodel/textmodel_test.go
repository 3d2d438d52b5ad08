package textmodel

import (
	"context"
	"errors"
	"testing"
)

func loadFixed(content string) func() (string, error) {
	return func() (string, error) { return content, nil }
}

func TestResolveLoadsOnce(t *testing.T) {
	svc := NewService(nil)
	loads := 0

	m1, err := svc.Resolve(context.Background(), "nb#cell0", func() (string, error) {
		loads++
		return "source", nil
	})
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}

	m2, err := svc.Resolve(context.Background(), "nb#cell0", func() (string, error) {
		loads++
		return "other", nil
	})
	if err != nil {
		t.Fatalf("Failed to resolve again: %v", err)
	}

	if m1 != m2 {
		t.Error("Expected shared model for same URI")
	}
	if loads != 1 {
		t.Errorf("Expected one load, got %d", loads)
	}
	if m2.Content() != "source" {
		t.Errorf("Expected original content, got %q", m2.Content())
	}
}

func TestResolveLoadError(t *testing.T) {
	svc := NewService(nil)
	wantErr := errors.New("boom")

	_, err := svc.Resolve(context.Background(), "nb#cell0", func() (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected load error, got %v", err)
	}
	if svc.Open("nb#cell0") {
		t.Error("Failed resolution must not install a model")
	}
}

func TestResolveCancelledContext(t *testing.T) {
	svc := NewService(nil)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := svc.Resolve(ctx, "nb#cell0", func() (string, error) {
		cancel() // cancellation arrives while the load is in flight
		return "late", nil
	})
	if err == nil {
		t.Fatal("Expected error for cancelled resolution")
	}
	if svc.Open("nb#cell0") {
		t.Error("Cancelled resolution must not install a model")
	}
}

func TestContentChangeNotifies(t *testing.T) {
	svc := NewService(nil)
	m, err := svc.Resolve(context.Background(), "nb#cell0", loadFixed("v1"))
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}

	var got []ChangeEvent
	sub := m.OnDidChangeContent(func(ev ChangeEvent) { got = append(got, ev) })
	defer sub.Dispose()

	m.SetContent("v2")
	m.SetContent("v2") // no-op

	if len(got) != 1 {
		t.Fatalf("Expected one change event, got %d", len(got))
	}
	if got[0].Content != "v2" || got[0].Version != 2 {
		t.Errorf("Unexpected event: %+v", got[0])
	}
}

func TestReleaseEvictsAtZeroRefs(t *testing.T) {
	svc := NewService(nil)
	m, _ := svc.Resolve(context.Background(), "nb#cell0", loadFixed("x"))
	svc.Resolve(context.Background(), "nb#cell0", loadFixed("x"))

	m.Release()
	if !svc.Open("nb#cell0") {
		t.Error("Model evicted while still referenced")
	}

	m.Release()
	if svc.Open("nb#cell0") {
		t.Error("Model not evicted at zero refs")
	}

	// Resolving again loads fresh content.
	m2, _ := svc.Resolve(context.Background(), "nb#cell0", loadFixed("fresh"))
	if m2.Content() != "fresh" {
		t.Errorf("Expected fresh load after eviction, got %q", m2.Content())
	}
}
