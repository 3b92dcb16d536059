package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache returned a value")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}

	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) after overwrite = %d; want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch a so b becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction; want least recently used entry dropped")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was evicted despite being recently used")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c missing after insert")
	}

	if evicts := c.Stats().Evicts; evicts != 1 {
		t.Errorf("Evicts = %d; want 1", evicts)
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewWithTTL[string, int](10, 10*time.Millisecond)
	c.Set("a", 1)
	c.SetTTL("forever", 2, 0)

	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry expired immediately")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("entry survived past its TTL")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("zero-TTL entry expired")
	}

	stats := c.Stats()
	if stats.Expired != 1 {
		t.Errorf("Expired = %d; want 1", stats.Expired)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d; want 0", c.Len())
	}
}

func TestStats(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)

	c.Get("a")
	c.Get("a")
	c.Get("nope")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Hits, Misses = %d, %d; want 2, 1", stats.Hits, stats.Misses)
	}
	if want := 2.0 / 3.0; stats.HitRate != want {
		t.Errorf("HitRate = %v; want %v", stats.HitRate, want)
	}
	if stats.Size != 1 || stats.Capacity != 10 {
		t.Errorf("Size, Capacity = %d, %d; want 1, 10", stats.Size, stats.Capacity)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](64)
	done := make(chan struct{})

	for w := 0; w < 4; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 1000; i++ {
				c.Set(i%100, i)
				c.Get(i % 100)
			}
		}(w)
	}
	for w := 0; w < 4; w++ {
		<-done
	}
}
