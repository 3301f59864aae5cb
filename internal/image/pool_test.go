package image

import (
	"sync"
	"testing"
)

func TestPool_GetPut_Reuse(t *testing.T) {
	pool := NewPool(4)

	buf1, err := pool.Get(NewRect(0, 0, 16, 8))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	pool.Put(buf1)
	if pool.Len() != 1 {
		t.Errorf("Len() = %d, want 1", pool.Len())
	}

	buf2, err := pool.Get(NewRect(5, 6, 16, 8))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if buf2 != buf1 {
		t.Error("Get() did not reuse pooled buffer")
	}
	if got := buf2.Bounds(); got != NewRect(5, 6, 16, 8) {
		t.Errorf("Bounds() = %+v, want origin (5,6)", got)
	}
}

func TestPool_DifferentSizes(t *testing.T) {
	pool := NewPool(4)

	small, _ := pool.Get(NewRect(0, 0, 4, 4))
	pool.Put(small)

	big, _ := pool.Get(NewRect(0, 0, 8, 8))
	if big == small {
		t.Error("Get() returned buffer of the wrong size")
	}
}

func TestPool_MaxPerBucket(t *testing.T) {
	pool := NewPool(2)

	for range 5 {
		buf, _ := NewImageBuf(4, 4)
		pool.Put(buf)
	}
	if pool.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pool.Len())
	}
}

func TestPool_InvalidSize(t *testing.T) {
	pool := NewPool(2)
	if _, err := pool.Get(NewRect(0, 0, 0, 4)); err == nil {
		t.Error("Get(zero width) error = nil, want ErrInvalidDimensions")
	}
	pool.Put(nil)
}

func TestPool_Concurrent(t *testing.T) {
	pool := NewPool(0)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				buf, err := pool.Get(NewRect(0, 0, 8, 8))
				if err != nil {
					t.Error(err)
					return
				}
				pool.Put(buf)
			}
		}()
	}
	wg.Wait()
}
