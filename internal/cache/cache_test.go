package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](4)

	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache returned ok")
	}
	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v, want 2, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)

	c.Get(1) // 2 is now the oldest
	c.Set(4, 4)

	if _, ok := c.Get(2); ok {
		t.Error("least recently used entry survived eviction")
	}
	for _, k := range []int{1, 3, 4} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d evicted", k)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCache_Unlimited(t *testing.T) {
	c := New[int, int](0)
	for i := range 1000 {
		c.Set(i, i)
	}
	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", c.Len())
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[int, string](8)
	calls := 0
	create := func() string {
		calls++
		return "v"
	}

	for range 3 {
		if got := c.GetOrCreate(7, create); got != "v" {
			t.Errorf("GetOrCreate() = %q, want v", got)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Len != 1 || s.Capacity != 8 {
		t.Errorf("Stats() = %+v", s)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Errorf("HitRate = %v, want 2/3", s.HitRate)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[int, int](2)
	c.Set(1, 1)
	c.Get(1)
	c.Clear()

	if c.Len() != 0 || c.Stats().Hits != 0 {
		t.Errorf("after Clear: Len() = %d, Stats() = %+v", c.Len(), c.Stats())
	}
	c.Set(2, 2)
	if v, ok := c.Get(2); !ok || v != 2 {
		t.Error("cache unusable after Clear")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[string, int](16)
	var wg sync.WaitGroup

	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := strconv.Itoa((g + i) % 32)
				c.GetOrCreate(key, func() int { return i })
				c.Get(key)
			}
		}()
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Errorf("Len() = %d exceeds limit 16", c.Len())
	}
}

func BenchmarkCacheGetOrCreate(b *testing.B) {
	c := New[int, int](64)
	i := 0
	for b.Loop() {
		c.GetOrCreate(i%32, func() int { return i })
		i++
	}
}
