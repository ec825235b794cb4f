package enumerable

import (
	"context"
	"iter"
	"maps"
	"slices"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// KV 键值对结构体
type KV[K comparable, V any] struct {
	Key   K
	Value V
}

// CompareFunc 顺序比较函数类型，返回负数、0、正数
type CompareFunc[T any] func(a, b T) int

// Query 查询结构体，延迟求值引擎的核心类型。
// iterate 是序列源：每次 for-range 都重新调用闭包，得到一次全新的独立遍历；
// 基于切片、Map、字符串和生成器的源天然可重放，Channel 等一次性源第二次遍历
// 只会看到已耗尽的空序列，这是文档化的约定而非错误。
type Query[T any] struct {
	compare    CompareFunc[T]
	iterate    iter.Seq[T]
	fastSlice  []T
	fastWhere  func(T) bool
	capacity   int
	sortSource *Query[T]
}

// Seq 返回供 for-range 从头到尾遍历的迭代器
func (q Query[T]) Seq() iter.Seq[T] {
	return q.iterate
}

// ToSlice 将查询结果收集为切片
func (q Query[T]) ToSlice() []T {
	if q.fastSlice != nil {
		source := q.fastSlice
		predicate := q.fastWhere
		if predicate == nil {
			return slices.Clone(source)
		}
		result := make([]T, 0, q.capacity/2+1) // 估算
		for _, v := range source {
			if predicate(v) {
				result = append(result, v)
			}
		}
		return result
	}
	return slices.Collect(q.iterate)
}

// AppendTo 将查询结果追加到 buf 末尾，配合 NewBufferPool 复用内存
func (q Query[T]) AppendTo(buf []T) []T {
	if q.fastSlice != nil {
		source := q.fastSlice
		predicate := q.fastWhere
		if predicate == nil {
			return append(buf, source...)
		}
		for _, v := range source {
			if predicate(v) {
				buf = append(buf, v)
			}
		}
		return buf
	}
	for item := range q.iterate {
		buf = append(buf, item)
	}
	return buf
}

// ToChannel 将查询结果收集为通道，支持上下文取消
func (q Query[T]) ToChannel(ctx context.Context) <-chan T {
	ch := make(chan T)
	go func() {
		defer close(ch)
		for item := range q.iterate {
			// 每轮先查一次取消状态，取消后最多再送出一个已就位的元素
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case ch <- item:
			}
		}
	}()
	return ch
}

// From 从切片创建 Query 查询对象
func From[T any](source []T) Query[T] {
	return Query[T]{
		iterate:   slices.Values(source),
		fastSlice: source,
		capacity:  len(source),
	}
}

// FromSeq 从任意 iter.Seq 创建 Query 查询对象。
// 能否重复遍历取决于 seq 本身
func FromSeq[T any](seq iter.Seq[T]) Query[T] {
	return Query[T]{iterate: seq}
}

// FromChannel 从只读 Channel 创建 Query 查询对象，只能遍历一次
func FromChannel[T any](source <-chan T) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			for item := range source {
				if !yield(item) {
					break
				}
			}
		},
	}
}

// FromString 从字符串创建 Query 查询对象，每个元素为一个 UTF-8 字符
func FromString(source string) Query[string] {
	return Query[string]{
		iterate: func(yield func(string) bool) {
			pos := 0
			length := len(source)
			for pos < length {
				r, w := utf8.DecodeRuneInString(source[pos:])
				var item string
				if r == utf8.RuneError && w == 1 {
					item = string(r)
				} else {
					item = source[pos : pos+w]
				}
				pos += w
				if !yield(item) {
					break
				}
			}
		},
		capacity: len(source),
	}
}

// FromMap 从 Map 创建 Query 查询对象，每个元素为 KV 键值对
func FromMap[K comparable, V any](source map[K]V) Query[KV[K, V]] {
	return Query[KV[K, V]]{
		iterate: func(yield func(KV[K, V]) bool) {
			for k, v := range maps.All(source) {
				if !yield(KV[K, V]{Key: k, Value: v}) {
					break
				}
			}
		},
		capacity: len(source),
	}
}

// Empty 创建一个空的 Query 查询对象
func Empty[T any]() Query[T] {
	return From([]T{})
}

// Range 创建一个包含指定范围内整数序列的 Query 查询对象，count <= 0 时为空
func Range(start, count int) Query[int] {
	if count <= 0 {
		return Empty[int]()
	}
	return Query[int]{
		iterate: func(yield func(int) bool) {
			end := start + count
			for i := start; i < end; i++ {
				if !yield(i) {
					return
				}
			}
		},
		capacity: count,
	}
}

// Sequence 创建从 start 到 end（含）按 step 步进的数值序列。
// step 为 0、任一参数为 NaN、或步进方向与区间方向相反时立即 panic
func Sequence[T constraints.Integer | constraints.Float](start, end, step T) Query[T] {
	if start != start || end != end || step != step {
		panic(invalidArgument("Sequence", "NaN bound or step"))
	}
	if step == 0 {
		panic(invalidArgument("Sequence", "step must not be zero"))
	}
	if (step > 0 && end < start) || (step < 0 && end > start) {
		panic(invalidArgument("Sequence", "step direction does not reach end"))
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			if step > 0 {
				for v := start; v <= end; v += step {
					if !yield(v) {
						return
					}
				}
				return
			}
			for v := start; v >= end; v += step {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// Repeat 创建一个包含重复元素的 Query 查询对象。
// 省略 count 时为无限序列，须配合 Take 等操作消费
func Repeat[T any](element T, count ...int) Query[T] {
	if len(count) == 0 {
		return Query[T]{
			iterate: func(yield func(T) bool) {
				for yield(element) {
				}
			},
		}
	}
	n := count[0]
	if n <= 0 {
		return Empty[T]()
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			for i := 0; i < n; i++ {
				if !yield(element) {
					return
				}
			}
		},
		capacity: n,
	}
}
