package image

import "sync"

// Pool is a thread-safe pool for reusing ImageBuf instances.
//
// Pool groups buffers by their dimensions so the ping-pong arenas of
// repeated filter runs over same-sized regions are allocated once. The
// origin of a pooled buffer is reset on Get.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*ImageBuf
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identically sized buffers.
type poolKey struct {
	width  int
	height int
}

// NewPool creates a new buffer pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*ImageBuf),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a buffer covering r from the pool or creates a new one.
// Reused buffers are not cleared; callers overwrite every pixel they read.
func (p *Pool) Get(r Rect) (*ImageBuf, error) {
	key := poolKey{width: r.Width, height: r.Height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.x0, buf.y0 = r.X, r.Y
		return buf, nil
	}
	p.mu.Unlock()

	return NewImageBufAt(r)
}

// Put returns a buffer to the pool for reuse.
// If buf is nil or the bucket is at capacity, the buffer is discarded.
func (p *Pool) Put(buf *ImageBuf) {
	if buf == nil || buf.IsEmpty() {
		return
	}

	key := poolKey{width: buf.width, height: buf.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers across all buckets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
