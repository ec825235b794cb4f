package enumerable

import "slices"

// Distinct 过滤掉重复的元素
func Distinct[T comparable](q Query[T]) Query[T] {
	return DistinctBy(q, func(t T) T { return t })
}

// DistinctBy 根基键选择器过滤重复元素
func DistinctBy[T any, K comparable](q Query[T], selector func(T) K) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			seen := make(map[K]struct{})
			for item := range q.iterate {
				key := selector(item)
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					if !yield(item) {
						return
					}
				}
			}
		},
	}
}

// DistinctFunc 按相等比较器过滤重复元素，逐个线性比对，复杂度 O(n²)。
// 元素可排序时建议改用 DistinctOrdered
func DistinctFunc[T any](q Query[T], equal EqualFunc[T]) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			var seen []T
			for item := range q.iterate {
				if containsFunc(seen, item, equal) {
					continue
				}
				seen = append(seen, item)
				if !yield(item) {
					return
				}
			}
		},
	}
}

// DistinctOrdered 按顺序比较器过滤重复元素，
// 内部维护有序集合做二分查找，单次判重复杂度 O(log n)
func DistinctOrdered[T any](q Query[T], compare CompareFunc[T]) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			var seen []T
			for item := range q.iterate {
				pos, found := slices.BinarySearchFunc(seen, item, compare)
				if found {
					continue
				}
				seen = slices.Insert(seen, pos, item)
				if !yield(item) {
					return
				}
			}
		},
	}
}

// Intersect 获取两个序列的交集
func Intersect[T comparable](q1, q2 Query[T]) Query[T] {
	return IntersectBy(q1, q2, func(t T) T { return t })
}

// IntersectBy 根基键选择器获取两个序列的交集
func IntersectBy[T any, K comparable](q1, q2 Query[T], selector func(T) K) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			seen := make(map[K]struct{})
			for item := range q2.iterate {
				seen[selector(item)] = struct{}{}
			}
			emitted := make(map[K]struct{})
			for item := range q1.iterate {
				key := selector(item)
				if _, ok := seen[key]; ok {
					if _, already := emitted[key]; !already {
						emitted[key] = struct{}{}
						if !yield(item) {
							return
						}
					}
				}
			}
		},
	}
}

// IntersectFunc 按相等比较器获取两个序列的交集，线性比对
func IntersectFunc[T any](q1, q2 Query[T], equal EqualFunc[T]) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			other := q2.ToSlice()
			var emitted []T
			for item := range q1.iterate {
				if !containsFunc(other, item, equal) {
					continue
				}
				if containsFunc(emitted, item, equal) {
					continue
				}
				emitted = append(emitted, item)
				if !yield(item) {
					return
				}
			}
		},
	}
}

// IntersectOrdered 按顺序比较器获取两个序列的交集，二分查找判重
func IntersectOrdered[T any](q1, q2 Query[T], compare CompareFunc[T]) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			other := sortedMembers(q2, compare)
			var emitted []T
			for item := range q1.iterate {
				if _, found := slices.BinarySearchFunc(other, item, compare); !found {
					continue
				}
				pos, found := slices.BinarySearchFunc(emitted, item, compare)
				if found {
					continue
				}
				emitted = slices.Insert(emitted, pos, item)
				if !yield(item) {
					return
				}
			}
		},
	}
}

// Union 获取两个序列的并集
func Union[T comparable](q1, q2 Query[T]) Query[T] {
	return UnionBy(q1, q2, func(t T) T { return t })
}

// UnionBy 根据键选择器获取两个序列的并集
func UnionBy[T any, K comparable](q1, q2 Query[T], selector func(T) K) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			seen := make(map[K]struct{})
			for item := range q1.iterate {
				key := selector(item)
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					if !yield(item) {
						return
					}
				}
			}
			for item := range q2.iterate {
				key := selector(item)
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					if !yield(item) {
						return
					}
				}
			}
		},
	}
}

// UnionFunc 按相等比较器获取两个序列的并集，线性比对，
// 等价于 DistinctFunc(q1.Concat(q2), equal)
func UnionFunc[T any](q1, q2 Query[T], equal EqualFunc[T]) Query[T] {
	return DistinctFunc(q1.Concat(q2), equal)
}

// UnionOrdered 按顺序比较器获取两个序列的并集，二分查找判重
func UnionOrdered[T any](q1, q2 Query[T], compare CompareFunc[T]) Query[T] {
	return DistinctOrdered(q1.Concat(q2), compare)
}

// Except 获取两个序列的差集 (q1 中有而 q2 中没有)
func Except[T comparable](q1, q2 Query[T]) Query[T] {
	return ExceptBy(q1, q2, func(t T) T { return t })
}

// ExceptBy 根据键选择器获取两个序列的差集
func ExceptBy[T any, K comparable](q1, q2 Query[T], selector func(T) K) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			seen := make(map[K]struct{})
			for item := range q2.iterate {
				seen[selector(item)] = struct{}{}
			}
			emitted := make(map[K]struct{})
			for item := range q1.iterate {
				key := selector(item)
				if _, ok := seen[key]; !ok {
					if _, already := emitted[key]; !already {
						emitted[key] = struct{}{}
						if !yield(item) {
							return
						}
					}
				}
			}
		},
	}
}

// ExceptFunc 按相等比较器获取两个序列的差集，线性比对
func ExceptFunc[T any](q1, q2 Query[T], equal EqualFunc[T]) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			other := q2.ToSlice()
			var emitted []T
			for item := range q1.iterate {
				if containsFunc(other, item, equal) {
					continue
				}
				if containsFunc(emitted, item, equal) {
					continue
				}
				emitted = append(emitted, item)
				if !yield(item) {
					return
				}
			}
		},
	}
}

// ExceptOrdered 按顺序比较器获取两个序列的差集，二分查找判重
func ExceptOrdered[T any](q1, q2 Query[T], compare CompareFunc[T]) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			other := sortedMembers(q2, compare)
			var emitted []T
			for item := range q1.iterate {
				if _, found := slices.BinarySearchFunc(other, item, compare); found {
					continue
				}
				pos, found := slices.BinarySearchFunc(emitted, item, compare)
				if found {
					continue
				}
				emitted = slices.Insert(emitted, pos, item)
				if !yield(item) {
					return
				}
			}
		},
	}
}

// Disjoint 判断两个序列是否没有任何公共元素
func Disjoint[T comparable](q1, q2 Query[T]) bool {
	return DisjointBy(q1, q2, func(t T) T { return t })
}

// DisjointBy 根据键选择器判断两个序列是否没有任何公共元素
func DisjointBy[T any, K comparable](q1, q2 Query[T], selector func(T) K) bool {
	seen := make(map[K]struct{})
	for item := range q2.iterate {
		seen[selector(item)] = struct{}{}
	}
	for item := range q1.iterate {
		if _, ok := seen[selector(item)]; ok {
			return false
		}
	}
	return true
}

// DisjointFunc 按相等比较器判断两个序列是否没有任何公共元素，线性比对
func DisjointFunc[T any](q1, q2 Query[T], equal EqualFunc[T]) bool {
	other := q2.ToSlice()
	for item := range q1.iterate {
		if containsFunc(other, item, equal) {
			return false
		}
	}
	return true
}

// 线性查找
func containsFunc[T any](items []T, target T, equal EqualFunc[T]) bool {
	for _, v := range items {
		if equal(v, target) {
			return true
		}
	}
	return false
}

// 收集并稳定排序，供二分查找使用
func sortedMembers[T any](q Query[T], compare CompareFunc[T]) []T {
	members := q.ToSlice()
	slices.SortStableFunc(members, compare)
	return members
}
