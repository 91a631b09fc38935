package predictor

import "testing"

func TestCachePutGetAll(t *testing.T) {
	c := NewCache()
	c.PutAll(map[int64]float64{1: 100, 2: 200, 3: 300})

	got, missing := c.GetAll([]int64{1, 3})
	if len(missing) != 0 {
		t.Fatalf("missing = %v, want none", missing)
	}
	if got[1] != 100 || got[3] != 300 {
		t.Errorf("got %v", got)
	}
}

func TestCacheReportsMissing(t *testing.T) {
	c := NewCache()
	c.PutAll(map[int64]float64{1: 100})

	_, missing := c.GetAll([]int64{1, 2, 3})
	if len(missing) != 2 || missing[0] != 2 || missing[1] != 3 {
		t.Errorf("missing = %v, want [2 3]", missing)
	}

	if m := c.Missing([]int64{3, 1, 2}); len(m) != 2 || m[0] != 3 || m[1] != 2 {
		t.Errorf("Missing = %v, want [3 2]", m)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()
	c.PutAll(map[int64]float64{1: 100, 2: 200})

	c.Invalidate([]int64{2, 99})

	if _, ok := c.Get(2); ok {
		t.Error("id 2 still cached after invalidation")
	}
	if v, ok := c.Get(1); !ok || v != 100 {
		t.Error("unrelated entry lost")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	c.PutAll(map[int64]float64{1: 100, 2: 200})

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}
