// Package bufpool recycles pixel slices between history snapshots.
package bufpool

import "sync"

// Pool is a thread-safe pool for reusing pixel slices.
//
// Pool groups slices by their length, so every canvas size gets its own
// bucket. Slices returned by Get are not cleared: callers always overwrite
// the full slice with a copy.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max slices per bucket
}

// New creates a new pool with the given maximum slices per bucket.
// A maxPerBucket of 0 or less means unlimited (use with caution).
func New(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a slice of length n from the pool or allocates a new one.
func (p *Pool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}

	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		bucket[len(bucket)-1] = nil
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		return buf
	}
	p.mu.Unlock()

	return make([]byte, n)
}

// Put returns a slice to the pool for reuse.
// If buf is empty or the bucket is at capacity, the slice is discarded.
func (p *Pool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	buf = buf[:cap(buf)]

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[len(buf)]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[len(buf)] = append(bucket, buf)
}

// Len returns the number of pooled slices of length n.
func (p *Pool) Len(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}
