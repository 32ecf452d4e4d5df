package marketdata

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func countingFetch(calls *int) FetchFunc {
	return func(_ context.Context, key Key) (any, error) {
		*calls++
		return key.Ticker + ":" + key.Window, nil
	}
}

func TestFetchMemoizes(t *testing.T) {
	c := NewCache(4)
	key := Key{Ticker: "005930.KS", Window: "3mo"}
	var calls int
	for i := 0; i < 3; i++ {
		v, err := c.Fetch(context.Background(), key, countingFetch(&calls))
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if v != "005930.KS:3mo" {
			t.Fatalf("got %v", v)
		}
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}
}

func TestFetchDistinguishesWindows(t *testing.T) {
	c := NewCache(4)
	var calls int
	fn := countingFetch(&calls)
	ctx := context.Background()
	c.Fetch(ctx, Key{Ticker: "005930.KS", Window: "1d"}, fn)
	c.Fetch(ctx, Key{Ticker: "005930.KS", Window: "3mo"}, fn)
	c.Fetch(ctx, Key{Ticker: "005930.KS", Window: "1d"}, fn)
	if calls != 2 {
		t.Fatalf("fetch called %d times, want 2", calls)
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	c := NewCache(4)
	key := Key{Ticker: "005930.KS", Window: "1d"}
	boom := errors.New("upstream down")
	var calls int
	fail := func(context.Context, Key) (any, error) {
		calls++
		return nil, boom
	}
	if _, err := c.Fetch(context.Background(), key, fail); !errors.Is(err, boom) {
		t.Fatalf("got %v, want the fetch error", err)
	}
	if c.Len() != 0 {
		t.Fatalf("failed fetch was cached, len=%d", c.Len())
	}
	c.Fetch(context.Background(), key, fail)
	if calls != 2 {
		t.Fatalf("fetch called %d times, want a retry", calls)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := NewCache(4)
	key := Key{Ticker: "005930.KS", Window: "1d"}
	var calls int
	fn := countingFetch(&calls)
	ctx := context.Background()
	c.Fetch(ctx, key, fn)
	c.Invalidate(key)
	c.Fetch(ctx, key, fn)
	if calls != 2 {
		t.Fatalf("fetch called %d times, want 2", calls)
	}
}

func TestInvalidateTickerDropsAllWindows(t *testing.T) {
	c := NewCache(8)
	var calls int
	fn := countingFetch(&calls)
	ctx := context.Background()
	for _, w := range []string{"1d", "5d", "3mo"} {
		c.Fetch(ctx, Key{Ticker: "005930.KS", Window: w}, fn)
	}
	c.Fetch(ctx, Key{Ticker: "000660.KS", Window: "1d"}, fn)
	c.InvalidateTicker("005930.KS")
	if c.Len() != 1 {
		t.Fatalf("len = %d, want only the other ticker left", c.Len())
	}
	c.Fetch(ctx, Key{Ticker: "000660.KS", Window: "1d"}, fn)
	if calls != 4 {
		t.Fatalf("fetch called %d times, want 4", calls)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2)
	var calls int
	fn := countingFetch(&calls)
	ctx := context.Background()
	a := Key{Ticker: "A", Window: "1d"}
	b := Key{Ticker: "B", Window: "1d"}
	c.Fetch(ctx, a, fn)
	c.Fetch(ctx, b, fn)
	c.Fetch(ctx, a, fn) // refresh a so b is now the oldest
	c.Fetch(ctx, Key{Ticker: "C", Window: "1d"}, fn)
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	c.Fetch(ctx, a, fn)
	if calls != 3 {
		t.Fatalf("a was evicted: %d calls, want 3", calls)
	}
	c.Fetch(ctx, b, fn)
	if calls != 4 {
		t.Fatalf("b should have been evicted: %d calls, want 4", calls)
	}
}

func TestDefaultCapacity(t *testing.T) {
	c := NewCache(0)
	ctx := context.Background()
	for i := 0; i < DefaultCapacity+10; i++ {
		key := Key{Ticker: fmt.Sprintf("T%03d", i), Window: "1d"}
		c.Fetch(ctx, key, func(context.Context, Key) (any, error) { return i, nil })
	}
	if c.Len() != DefaultCapacity {
		t.Fatalf("len = %d, want %d", c.Len(), DefaultCapacity)
	}
}
