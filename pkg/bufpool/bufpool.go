// Package bufpool keeps reusable fixed-size byte buffers for streaming copies.
//
// Buffers are grouped by exact size: every distinct size gets its own
// sync.Pool, created on first use. This suits callers that copy in a
// configured chunk size, where the size is fixed for the process lifetime
// but not known at compile time.
//
// Usage:
//
//	buf := bufpool.Get(8 << 10)
//	defer bufpool.Put(buf)
package bufpool

import (
	"sync"
)

// MaxPooledSize is the largest buffer kept for reuse. Larger requests are
// allocated directly and left to the garbage collector.
const MaxPooledSize = 4 << 20

// Pool hands out buffers grouped by size. The zero value is ready to use.
type Pool struct {
	pools sync.Map // int -> *sync.Pool
}

func (p *Pool) poolFor(size int) *sync.Pool {
	if existing, ok := p.pools.Load(size); ok {
		return existing.(*sync.Pool)
	}
	created := &sync.Pool{
		New: func() any {
			buf := make([]byte, size)
			return &buf
		},
	}
	actual, _ := p.pools.LoadOrStore(size, created)
	return actual.(*sync.Pool)
}

// Get returns a buffer with len and cap equal to size.
// Callers must not keep references to it after Put.
func (p *Pool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	if size > MaxPooledSize {
		return make([]byte, size)
	}
	return *p.poolFor(size).Get().(*[]byte)
}

// Put returns buf for reuse. Buffers that were not produced by Get
// (or were resliced to a different capacity) are dropped.
func (p *Pool) Put(buf []byte) {
	size := cap(buf)
	if size == 0 || size > MaxPooledSize {
		return
	}
	full := buf[:size]
	p.poolFor(size).Put(&full)
}

var global Pool

// Get returns a buffer of exactly size bytes from the package pool.
func Get(size int) []byte {
	return global.Get(size)
}

// Put returns a buffer to the package pool.
func Put(buf []byte) {
	global.Put(buf)
}
