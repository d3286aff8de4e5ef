// cache_test.go
package mapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestCachedRendererRendersOncePerKey(t *testing.T) {
	cache := NewCachedRenderer()
	calls := 0
	render := func(ctx context.Context) (Artifact, error) {
		calls++
		return Artifact{Path: "slide_25_map.png", PNG: []byte{1, 2, 3, byte(calls)}}, nil
	}

	// Exhibit slide and summary view ask for the same project map.
	first, err := cache.Get(context.Background(), "project-42", render)
	if err != nil {
		t.Fatalf("first Get failed: %v", err)
	}
	second, err := cache.Get(context.Background(), "project-42", render)
	if err != nil {
		t.Fatalf("second Get failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("render invoked %d times, want 1", calls)
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("both consumers must receive byte-identical image bytes")
	}
}

func TestCachedRendererSeparatesKeys(t *testing.T) {
	cache := NewCachedRenderer()
	calls := 0
	render := func(ctx context.Context) (Artifact, error) {
		calls++
		return Artifact{PNG: []byte(fmt.Sprintf("render-%d", calls))}, nil
	}

	a, _ := cache.Get(context.Background(), "project-1", render)
	b, _ := cache.Get(context.Background(), "project-2", render)
	if calls != 2 {
		t.Errorf("render invoked %d times for two keys, want 2", calls)
	}
	if bytes.Equal(a.PNG, b.PNG) {
		t.Error("distinct keys must render independently")
	}
}

func TestCachedRendererDoesNotCacheFailures(t *testing.T) {
	cache := NewCachedRenderer()
	calls := 0
	render := func(ctx context.Context) (Artifact, error) {
		calls++
		if calls == 1 {
			return Artifact{}, errors.New("browser fell over")
		}
		return Artifact{PNG: []byte("ok")}, nil
	}

	if _, err := cache.Get(context.Background(), "k", render); err == nil {
		t.Fatal("first Get should propagate the render error")
	}
	art, err := cache.Get(context.Background(), "k", render)
	if err != nil {
		t.Fatalf("second Get should retry and succeed, got: %v", err)
	}
	if string(art.PNG) != "ok" {
		t.Errorf("unexpected artifact after retry: %q", art.PNG)
	}
	if calls != 2 {
		t.Errorf("render invoked %d times, want 2 (failure not cached)", calls)
	}
}
