package cache

import (
	"testing"
	"time"
)

func TestLRUPolicy_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](Options{MaxEntries: 2, DefaultTTL: time.Minute, Eviction: LRU})
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	// touching a makes b the least recently used
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a present")
	}
	c.Set("c", 3, 0)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected LRU to evict b")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected recently used a to survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("expected c present")
	}
}

func TestLRUPolicy_OverwriteRefreshesRecency(t *testing.T) {
	c := New[int](Options{MaxEntries: 2, DefaultTTL: time.Minute, Eviction: LRU})
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Set("a", 10, 0) // overwrite marks a most recent
	c.Set("c", 3, 0)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b evicted as least recent")
	}
	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Fatalf("expected refreshed a to survive, got ok=%v v=%v", ok, v)
	}
}

func TestPolicyBookkeeping_RemoveUntrackedKeyIsNoop(t *testing.T) {
	for _, p := range []Policy{newFIFOPolicy(), newLRUPolicy()} {
		p.Remove("ghost")
		if victim := p.Evict(); victim != "" {
			t.Fatalf("expected empty policy to evict nothing, got %q", victim)
		}
	}
}
