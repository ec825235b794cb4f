package enumerable

import "slices"

// Permutations 产出源序列去重后元素的全部排列，每个排列是独立副本。
// 省略 size 时排列长度为去重后的元素个数；size 为负立即 panic，
// size 超过去重后元素个数时在迭代开始时 panic（此前无法得知元素个数）。
// 迭代时物化整个源序列，不适用于无限序列
func Permutations[T comparable](q Query[T], size ...int) Query[[]T] {
	target := -1
	if len(size) > 0 {
		target = size[0]
		if target < 0 {
			panic(invalidArgument("Permutations", "size must not be negative"))
		}
	}
	return Query[[]T]{
		iterate: func(yield func([]T) bool) {
			items := Distinct(q).ToSlice()
			n := target
			if n < 0 {
				n = len(items)
			}
			if n > len(items) {
				panic(invalidArgument("Permutations", "size exceeds the number of distinct elements"))
			}
			used := make([]bool, len(items))
			current := make([]T, n)
			var backtrack func(depth int) bool
			backtrack = func(depth int) bool {
				if depth == n {
					return yield(slices.Clone(current))
				}
				for i, item := range items {
					if used[i] {
						continue
					}
					used[i] = true
					current[depth] = item
					if !backtrack(depth + 1) {
						return false
					}
					used[i] = false
				}
				return true
			}
			backtrack(0)
		},
	}
}

// Combinations 产出源序列去重后元素的组合，每个组合是独立副本，
// 组合内元素按首次出现顺序排列（字典序）。
// 省略 size 时产出 0 到 n 的全部组合（先空集）；size 为负立即 panic，
// size 超过去重后元素个数时在迭代开始时 panic。
// 迭代时物化整个源序列，不适用于无限序列
func Combinations[T comparable](q Query[T], size ...int) Query[[]T] {
	target := -1
	if len(size) > 0 {
		target = size[0]
		if target < 0 {
			panic(invalidArgument("Combinations", "size must not be negative"))
		}
	}
	return Query[[]T]{
		iterate: func(yield func([]T) bool) {
			items := Distinct(q).ToSlice()
			if target > len(items) {
				panic(invalidArgument("Combinations", "size exceeds the number of distinct elements"))
			}
			sizes := []int{target}
			if target < 0 {
				sizes = make([]int, len(items)+1)
				for i := range sizes {
					sizes[i] = i
				}
			}
			for _, n := range sizes {
				current := make([]T, n)
				var backtrack func(start, depth int) bool
				backtrack = func(start, depth int) bool {
					if depth == n {
						return yield(slices.Clone(current))
					}
					for i := start; i < len(items); i++ {
						current[depth] = items[i]
						if !backtrack(i+1, depth+1) {
							return false
						}
					}
					return true
				}
				if !backtrack(0, 0) {
					return
				}
			}
		},
	}
}
