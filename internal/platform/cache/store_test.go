package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}

	store.Set(ctx, "k", 42)
	value, ok := store.Get(ctx, "k")
	if !ok || value.(int) != 42 {
		t.Fatalf("expected 42, got %v ok=%t", value, ok)
	}

	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "k", "v")
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_GetOrCompute_SharesComputation(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	var computations atomic.Int64
	compute := func() (any, error) {
		computations.Add(1)
		time.Sleep(5 * time.Millisecond)
		return "leaderboard", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := store.GetOrCompute(ctx, "k", compute)
			if err != nil {
				t.Errorf("get or compute: %v", err)
				return
			}
			if value.(string) != "leaderboard" {
				t.Errorf("unexpected value %v", value)
			}
		}()
	}
	wg.Wait()

	if got := computations.Load(); got != 1 {
		t.Fatalf("expected one computation, got %d", got)
	}
}

func TestStore_GetOrCompute_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	boom := fmt.Errorf("boom")
	if _, err := store.GetOrCompute(ctx, "k", func() (any, error) { return nil, boom }); err == nil {
		t.Fatalf("expected error")
	}

	value, err := store.GetOrCompute(ctx, "k", func() (any, error) { return "ok", nil })
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if value.(string) != "ok" {
		t.Fatalf("expected ok, got %v", value)
	}
}
