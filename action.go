package enumerable

import "cmp"

// ForEach 遍历序列并对每个元素执行指定操作，操作返回 false 时提前结束
func (q Query[T]) ForEach(action func(T) bool) {
	if q.fastSlice != nil {
		source := q.fastSlice
		preFilter := q.fastWhere
		for _, item := range source {
			if preFilter != nil && !preFilter(item) {
				continue
			}
			if !action(item) {
				return
			}
		}
		return
	}
	for item := range q.iterate {
		if !action(item) {
			break
		}
	}
}

// ForEachIndexed 带索引遍历序列，操作返回 false 时提前结束
func (q Query[T]) ForEachIndexed(action func(int, T) bool) {
	index := 0
	if q.fastSlice != nil {
		source := q.fastSlice
		preFilter := q.fastWhere
		for _, item := range source {
			if preFilter != nil && !preFilter(item) {
				continue
			}
			if !action(index, item) {
				return
			}
			index++
		}
		return
	}
	for item := range q.iterate {
		if !action(index, item) {
			break
		}
		index++
	}
}

// Tap 对流经的每个元素执行观察函数，不改变序列内容
func (q Query[T]) Tap(observe func(T)) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			for item := range q.iterate {
				observe(item)
				if !yield(item) {
					return
				}
			}
		},
		capacity: q.capacity,
	}
}

// MinBy 根据选择器返回键最小的元素，空序列返回 ErrNoElements
func MinBy[T any, R cmp.Ordered](q Query[T], selector func(T) R) (T, error) {
	if q.fastSlice != nil {
		var min T
		var minR R
		first := true
		for _, v := range q.fastSlice {
			if q.fastWhere != nil && !q.fastWhere(v) {
				continue
			}
			val := selector(v)
			if first || cmp.Compare(val, minR) < 0 {
				min = v
				minR = val
				first = false
			}
		}
		if first {
			return min, ErrNoElements
		}
		return min, nil
	}
	var min T
	var minR R
	first := true
	for item := range q.iterate {
		val := selector(item)
		if first || cmp.Compare(val, minR) < 0 {
			min = item
			minR = val
			first = false
		}
	}
	if first {
		return min, ErrNoElements
	}
	return min, nil
}

// MaxBy 根据选择器返回键最大的元素，空序列返回 ErrNoElements
func MaxBy[T any, R cmp.Ordered](q Query[T], selector func(T) R) (T, error) {
	if q.fastSlice != nil {
		var max T
		var maxR R
		first := true
		for _, v := range q.fastSlice {
			if q.fastWhere != nil && !q.fastWhere(v) {
				continue
			}
			val := selector(v)
			if first || cmp.Compare(val, maxR) > 0 {
				max = v
				maxR = val
				first = false
			}
		}
		if first {
			return max, ErrNoElements
		}
		return max, nil
	}
	var max T
	var maxR R
	first := true
	for item := range q.iterate {
		val := selector(item)
		if first || cmp.Compare(val, maxR) > 0 {
			max = item
			maxR = val
			first = false
		}
	}
	if first {
		return max, ErrNoElements
	}
	return max, nil
}
