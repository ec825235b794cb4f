package enumerable

import (
	"iter"
	"slices"
)

// Select 将序列中的每个元素投影到新表单
func Select[T, V any](q Query[T], selector func(T) V) Query[V] {
	return Query[V]{
		iterate: func(yield func(V) bool) {
			for item := range q.iterate {
				if !yield(selector(item)) {
					return
				}
			}
		},
	}
}

// SelectIndexed 带索引投影元素，索引从 0 开始且每次遍历重新计数
func SelectIndexed[T, V any](q Query[T], selector func(int, T) V) Query[V] {
	return Query[V]{
		iterate: func(yield func(V) bool) {
			index := 0
			for item := range q.iterate {
				if !yield(selector(index, item)) {
					return
				}
				index++
			}
		},
	}
}

// SelectMany 将每个元素映射为一个切片并展平为单个序列
func SelectMany[T, V any](q Query[T], selector func(T) []V) Query[V] {
	return Query[V]{
		iterate: func(yield func(V) bool) {
			for item := range q.iterate {
				for _, v := range selector(item) {
					if !yield(v) {
						return
					}
				}
			}
		},
	}
}

// Flatten 将切片序列展平为元素序列
func Flatten[T any](q Query[[]T]) Query[T] {
	return SelectMany(q, func(t []T) []T { return t })
}

// Zip 将两个序列按位置配对投影，以较短一方为准
func Zip[A, B, R any](q1 Query[A], q2 Query[B], selector func(A, B) R) Query[R] {
	return Query[R]{
		iterate: func(yield func(R) bool) {
			next, stop := iter.Pull(q2.iterate)
			defer stop()
			for a := range q1.iterate {
				b, ok := next()
				if !ok {
					return
				}
				if !yield(selector(a, b)) {
					return
				}
			}
		},
	}
}

// Scan 对序列做累积折叠，逐个产出每一步的累积值
func Scan[T, A any](q Query[T], seed A, folder func(A, T) A) Query[A] {
	return Query[A]{
		iterate: func(yield func(A) bool) {
			acc := seed
			for item := range q.iterate {
				acc = folder(acc, item)
				if !yield(acc) {
					return
				}
			}
		},
	}
}

// Chunk 把序列切分为长度为 size 的子切片，最后一块可能不满。
// size 小于 1 时立即 panic
func (q Query[T]) Chunk(size int) Query[[]T] {
	if size < 1 {
		panic(invalidArgument("Chunk", "size must be at least 1"))
	}
	return Query[[]T]{
		iterate: func(yield func([]T) bool) {
			chunk := make([]T, 0, size)
			for item := range q.iterate {
				chunk = append(chunk, item)
				if len(chunk) == size {
					if !yield(chunk) {
						return
					}
					chunk = make([]T, 0, size)
				}
			}
			if len(chunk) > 0 {
				yield(chunk)
			}
		},
	}
}

// Windows 产出长度为 size 的滑动窗口，每个窗口是独立副本。
// 元素不足 size 个时无输出；size 小于 1 时立即 panic
func (q Query[T]) Windows(size int) Query[[]T] {
	if size < 1 {
		panic(invalidArgument("Windows", "size must be at least 1"))
	}
	return Query[[]T]{
		iterate: func(yield func([]T) bool) {
			window := make([]T, 0, size)
			for item := range q.iterate {
				if len(window) < size {
					window = append(window, item)
					if len(window) == size {
						if !yield(slices.Clone(window)) {
							return
						}
					}
					continue
				}
				copy(window, window[1:])
				window[size-1] = item
				if !yield(slices.Clone(window)) {
					return
				}
			}
		},
	}
}

// ToMap 根据选择器将序列转为 Map，键重复时后者覆盖前者
func ToMap[T any, K comparable](q Query[T], keySelector func(T) K) map[K]T {
	m := make(map[K]T, q.capacity)
	for item := range q.iterate {
		m[keySelector(item)] = item
	}
	return m
}

// ToMapSelect 根据键选择器和值选择器转换序列，键重复时后者覆盖前者
func ToMapSelect[T any, K comparable, V any](q Query[T], keySelector func(T) K, valueSelector func(T) V) map[K]V {
	m := make(map[K]V, q.capacity)
	for item := range q.iterate {
		m[keySelector(item)] = valueSelector(item)
	}
	return m
}

// ToDictionary 根据选择器将序列转为 Map，键重复时返回错误
func ToDictionary[T any, K comparable](q Query[T], keySelector func(T) K) (map[K]T, error) {
	return ToDictionarySelect(q, keySelector, func(t T) T { return t })
}

// ToDictionarySelect 根据键选择器和值选择器转换序列，键重复时返回错误
func ToDictionarySelect[T any, K comparable, V any](q Query[T], keySelector func(T) K, valueSelector func(T) V) (map[K]V, error) {
	m := make(map[K]V, q.capacity)
	for item := range q.iterate {
		key := keySelector(item)
		if _, ok := m[key]; ok {
			return nil, invalidArgument("ToDictionary", "duplicate key")
		}
		m[key] = valueSelector(item)
	}
	return m, nil
}

// ToSet 将序列收集为集合
func ToSet[T comparable](q Query[T]) map[T]struct{} {
	set := make(map[T]struct{}, q.capacity)
	for item := range q.iterate {
		set[item] = struct{}{}
	}
	return set
}

// Try 执行可能会引发 panic 的函数
func Try[T any](f func() T) (result T, err any) {
	defer func() {
		if r := recover(); r != nil {
			err = r
		}
	}()
	result = f()
	return
}

// WhereSelect 选择满足条件并执行变换的元素
func WhereSelect[T, V any](q Query[T], selector func(T) (V, bool)) Query[V] {
	return Query[V]{
		iterate: func(yield func(V) bool) {
			for item := range q.iterate {
				val, ok := selector(item)
				if ok {
					if !yield(val) {
						return
					}
				}
			}
		},
	}
}

// DistinctSelect 映射并去重
func DistinctSelect[T any, V comparable](q Query[T], selector func(T) V) Query[V] {
	return Query[V]{
		iterate: func(yield func(V) bool) {
			seen := make(map[V]struct{})
			for item := range q.iterate {
				val := selector(item)
				if _, ok := seen[val]; !ok {
					seen[val] = struct{}{}
					if !yield(val) {
						return
					}
				}
			}
		},
	}
}

// UnionSelect 映射并合并去重
func UnionSelect[T any, V comparable](q, q2 Query[T], selector func(T) V) Query[V] {
	return Query[V]{
		iterate: func(yield func(V) bool) {
			seen := make(map[V]struct{})
			for item := range q.iterate {
				val := selector(item)
				if _, ok := seen[val]; !ok {
					seen[val] = struct{}{}
					if !yield(val) {
						return
					}
				}
			}
			for item := range q2.iterate {
				val := selector(item)
				if _, ok := seen[val]; !ok {
					seen[val] = struct{}{}
					if !yield(val) {
						return
					}
				}
			}
		},
	}
}

// IntersectSelect 映射并取交集去重
func IntersectSelect[T any, V comparable](q, q2 Query[T], selector func(T) V) Query[V] {
	return Query[V]{
		iterate: func(yield func(V) bool) {
			seen := make(map[V]struct{})
			for item := range q2.iterate {
				seen[selector(item)] = struct{}{}
			}
			emitted := make(map[V]struct{})
			for item := range q.iterate {
				val := selector(item)
				if _, ok := seen[val]; ok {
					if _, already := emitted[val]; !already {
						emitted[val] = struct{}{}
						if !yield(val) {
							return
						}
					}
				}
			}
		},
	}
}

// ExceptSelect 映射并取差集去重
func ExceptSelect[T any, V comparable](q, q2 Query[T], selector func(T) V) Query[V] {
	return Query[V]{
		iterate: func(yield func(V) bool) {
			seen := make(map[V]struct{})
			for item := range q2.iterate {
				seen[selector(item)] = struct{}{}
			}
			emitted := make(map[V]struct{})
			for item := range q.iterate {
				val := selector(item)
				if _, ok := seen[val]; !ok {
					if _, already := emitted[val]; !already {
						emitted[val] = struct{}{}
						if !yield(val) {
							return
						}
					}
				}
			}
		},
	}
}
