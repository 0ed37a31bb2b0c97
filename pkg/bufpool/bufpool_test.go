package bufpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsExactSize(t *testing.T) {
	for _, size := range []int{1, 1024, 8 << 10, 64 << 10} {
		buf := Get(size)
		assert.Len(t, buf, size)
		assert.Equal(t, size, cap(buf))
		Put(buf)
	}
}

func TestGetNonPositive(t *testing.T) {
	assert.Nil(t, Get(0))
	assert.Nil(t, Get(-5))
	Put(nil)
}

func TestOversizedNotPooled(t *testing.T) {
	var p Pool
	buf := p.Get(MaxPooledSize + 1)
	assert.Len(t, buf, MaxPooledSize+1)
	p.Put(buf)

	count := 0
	p.pools.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Zero(t, count)
}

func TestPutRestoresFullLength(t *testing.T) {
	var p Pool
	buf := p.Get(4096)
	p.Put(buf[:10])

	again := p.Get(4096)
	assert.Len(t, again, 4096)
}

func TestConcurrentUse(t *testing.T) {
	var p Pool
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			size := 1024 * (1 + i%4)
			for j := 0; j < 100; j++ {
				buf := p.Get(size)
				buf[0] = byte(j)
				p.Put(buf)
			}
		}(i)
	}
	wg.Wait()
}
