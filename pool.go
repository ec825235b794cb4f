package enumerable

import "sync"

// bufferPool 提供切片复用，减少 GC 压力
// 使用示例:
//
//	pool := NewBufferPool[int]()
//	buf := pool.Get(1000)
//	result := From(data).AppendTo(buf)
//	// 使用完后归还
//	pool.Put(result)
type bufferPool[T any] struct {
	pool sync.Pool
}

func (p *bufferPool[T]) Get(capacity int) []T {
	if v := p.pool.Get(); v != nil {
		buf := v.([]T)
		if cap(buf) >= capacity {
			return buf[:0]
		}
	}
	return make([]T, 0, capacity)
}

func (p *bufferPool[T]) Put(buf []T) {
	if cap(buf) > 0 {
		p.pool.Put(buf[:0])
	}
}

// NewBufferPool 创建一个新的 buffer pool
func NewBufferPool[T any]() *bufferPool[T] {
	return &bufferPool[T]{}
}
