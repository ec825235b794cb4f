package enumerable

import (
	"cmp"
	"iter"

	"golang.org/x/exp/constraints"
)

// Count 返回序列中的元素个数
func (q Query[T]) Count() int {
	if q.fastSlice != nil && q.fastWhere == nil {
		return len(q.fastSlice)
	}
	count := 0
	for range q.iterate {
		count++
	}
	return count
}

// CountWith 统计满足条件的元素个数
func (q Query[T]) CountWith(predicate func(T) bool) int {
	if q.fastSlice != nil {
		source := q.fastSlice
		preFilter := q.fastWhere
		count := 0
		for _, v := range source {
			if preFilter != nil && !preFilter(v) {
				continue
			}
			if predicate(v) {
				count++
			}
		}
		return count
	}
	count := 0
	for item := range q.iterate {
		if predicate(item) {
			count++
		}
	}
	return count
}

// Any 判断序列是否包含任何元素
func (q Query[T]) Any() bool {
	if q.fastSlice != nil {
		if q.fastWhere == nil {
			return len(q.fastSlice) > 0
		}
		for _, v := range q.fastSlice {
			if q.fastWhere(v) {
				return true
			}
		}
		return false
	}
	for range q.iterate {
		return true
	}
	return false
}

// AnyWith 判断序列是否包含满足指定条件的元素
func (q Query[T]) AnyWith(predicate func(T) bool) bool {
	for item := range q.iterate {
		if predicate(item) {
			return true
		}
	}
	return false
}

// All 判断序列中的所有元素是否都满足指定条件
func (q Query[T]) All(predicate func(T) bool) bool {
	for item := range q.iterate {
		if !predicate(item) {
			return false
		}
	}
	return true
}

// Sum 计算数值序列的和，空序列返回 ErrNoElements
func Sum[T constraints.Integer | constraints.Float | constraints.Complex](q Query[T]) (T, error) {
	return SumBy(q, func(t T) T { return t })
}

// SumBy 根据选择器求成员和，空序列返回 ErrNoElements
func SumBy[T any, R constraints.Integer | constraints.Float | constraints.Complex](q Query[T], selector func(T) R) (R, error) {
	var sum R
	found := false
	for item := range q.iterate {
		sum += selector(item)
		found = true
	}
	if !found {
		return sum, ErrNoElements
	}
	return sum, nil
}

// Average 计算数值序列的平均值（float64），空序列返回 ErrNoElements
func Average[T constraints.Integer | constraints.Float](q Query[T]) (float64, error) {
	return AverageBy(q, func(t T) T { return t })
}

// AverageBy 根据选择器计算平均值，空序列返回 ErrNoElements
func AverageBy[T any, R constraints.Integer | constraints.Float](q Query[T], selector func(T) R) (float64, error) {
	var sum float64
	count := 0
	for item := range q.iterate {
		sum += float64(selector(item))
		count++
	}
	if count == 0 {
		return 0, ErrNoElements
	}
	return sum / float64(count), nil
}

// Min 返回最小元素，空序列返回 ErrNoElements
func Min[T cmp.Ordered](q Query[T]) (T, error) {
	return MinBy(q, func(t T) T { return t })
}

// Max 返回最大元素，空序列返回 ErrNoElements
func Max[T cmp.Ordered](q Query[T]) (T, error) {
	return MaxBy(q, func(t T) T { return t })
}

// Contains 判断序列中是否包含指定的元素
func Contains[T comparable](q Query[T], value T) bool {
	return q.AnyWith(func(t T) bool { return t == value })
}

// ContainsFunc 按相等比较器判断序列中是否包含指定的元素
func ContainsFunc[T any](q Query[T], value T, equal EqualFunc[T]) bool {
	return q.AnyWith(func(t T) bool { return equal(t, value) })
}

// First 返回第一个元素，空序列返回 ErrNoElements
func (q Query[T]) First() (T, error) {
	for item := range q.iterate {
		return item, nil
	}
	var zero T
	return zero, ErrNoElements
}

// FirstWith 返回满足条件的第一个元素，没有匹配返回 ErrNoMatch
func (q Query[T]) FirstWith(predicate func(T) bool) (T, error) {
	for item := range q.iterate {
		if predicate(item) {
			return item, nil
		}
	}
	var zero T
	return zero, ErrNoMatch
}

// Last 返回最后一个元素，空序列返回 ErrNoElements
func (q Query[T]) Last() (T, error) {
	if q.fastSlice != nil {
		source := q.fastSlice
		pre := q.fastWhere
		if pre == nil {
			if len(source) > 0 {
				return source[len(source)-1], nil
			}
		} else {
			for i := len(source) - 1; i >= 0; i-- {
				if pre(source[i]) {
					return source[i], nil
				}
			}
		}
		var zero T
		return zero, ErrNoElements
	}
	var last T
	found := false
	for item := range q.iterate {
		last = item
		found = true
	}
	if !found {
		return last, ErrNoElements
	}
	return last, nil
}

// LastWith 返回满足条件的最后一个元素，没有匹配返回 ErrNoMatch
func (q Query[T]) LastWith(predicate func(T) bool) (T, error) {
	var last T
	found := false
	for item := range q.iterate {
		if predicate(item) {
			last = item
			found = true
		}
	}
	if !found {
		return last, ErrNoMatch
	}
	return last, nil
}

// FirstDefault 返回第一个元素，若空返回 defaultValue
func (q Query[T]) FirstDefault(defaultValue ...T) T {
	for item := range q.iterate {
		return item
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	var zero T
	return zero
}

// FirstWithDefault 返回满足条件的第一个元素，没有匹配返回 defaultValue
func (q Query[T]) FirstWithDefault(predicate func(T) bool, defaultValue ...T) T {
	return q.Where(predicate).FirstDefault(defaultValue...)
}

// LastDefault 返回最后一个元素，若空返回 defaultValue
func (q Query[T]) LastDefault(defaultValue ...T) T {
	var last T
	found := false
	for item := range q.iterate {
		last = item
		found = true
	}
	if found {
		return last
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	var zero T
	return zero
}

// LastWithDefault 返回满足条件的最后一个元素，没有匹配返回 defaultValue
func (q Query[T]) LastWithDefault(predicate func(T) bool, defaultValue ...T) T {
	return q.Where(predicate).LastDefault(defaultValue...)
}

// Single 返回序列唯一的元素；
// 空序列返回 ErrNoElements，多于一个元素返回 ErrMoreThanOneElement
func (q Query[T]) Single() (T, error) {
	var val T
	count := 0
	for item := range q.iterate {
		val = item
		count++
		if count > 1 {
			var zero T
			return zero, ErrMoreThanOneElement
		}
	}
	if count == 0 {
		var zero T
		return zero, ErrNoElements
	}
	return val, nil
}

// SingleWith 返回满足条件的唯一元素；
// 没有匹配返回 ErrNoMatch，多于一个匹配返回 ErrMoreThanOneMatch
func (q Query[T]) SingleWith(predicate func(T) bool) (T, error) {
	var val T
	count := 0
	for item := range q.iterate {
		if !predicate(item) {
			continue
		}
		val = item
		count++
		if count > 1 {
			var zero T
			return zero, ErrMoreThanOneMatch
		}
	}
	if count == 0 {
		var zero T
		return zero, ErrNoMatch
	}
	return val, nil
}

// SingleDefault 返回序列唯一的元素，空序列返回 defaultValue；
// 默认值只替代缺元素的情况，多于一个元素仍返回 ErrMoreThanOneElement
func (q Query[T]) SingleDefault(defaultValue ...T) (T, error) {
	var val T
	count := 0
	for item := range q.iterate {
		val = item
		count++
		if count > 1 {
			var zero T
			return zero, ErrMoreThanOneElement
		}
	}
	if count == 0 {
		if len(defaultValue) > 0 {
			return defaultValue[0], nil
		}
		var zero T
		return zero, nil
	}
	return val, nil
}

// ElementAt 返回指定位置的元素，索引为负或超出范围返回 ErrIndexOutOfBounds
func (q Query[T]) ElementAt(index int) (T, error) {
	var zero T
	if index < 0 {
		return zero, ErrIndexOutOfBounds
	}
	if q.fastSlice != nil && q.fastWhere == nil {
		if index >= len(q.fastSlice) {
			return zero, ErrIndexOutOfBounds
		}
		return q.fastSlice[index], nil
	}
	pos := 0
	for item := range q.iterate {
		if pos == index {
			return item, nil
		}
		pos++
	}
	return zero, ErrIndexOutOfBounds
}

// ElementAtDefault 返回指定位置的元素，越界返回 defaultValue
func (q Query[T]) ElementAtDefault(index int, defaultValue ...T) T {
	item, err := q.ElementAt(index)
	if err == nil {
		return item
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	var zero T
	return zero
}

// IndexOf 返回元素的索引
func IndexOf[T comparable](q Query[T], value T) int {
	index := 0
	for item := range q.iterate {
		if item == value {
			return index
		}
		index++
	}
	return -1
}

// IndexOfWith 返回满足条件的元素的索引
func (q Query[T]) IndexOfWith(predicate func(T) bool) int {
	index := 0
	for item := range q.iterate {
		if predicate(item) {
			return index
		}
		index++
	}
	return -1
}

// LastIndexOf 返回元素最后出现的索引
func LastIndexOf[T comparable](q Query[T], value T) int {
	index := 0
	last := -1
	for item := range q.iterate {
		if item == value {
			last = index
		}
		index++
	}
	return last
}

// LastIndexOfWith 返回满足条件的元素最后出现的索引
func (q Query[T]) LastIndexOfWith(predicate func(T) bool) int {
	index := 0
	last := -1
	for item := range q.iterate {
		if predicate(item) {
			last = index
		}
		index++
	}
	return last
}

// Fold 以 seed 为初始值折叠序列并返回最终累积值
func Fold[T, A any](q Query[T], seed A, folder func(A, T) A) A {
	acc := seed
	for item := range q.iterate {
		acc = folder(acc, item)
	}
	return acc
}

// Reduce 以第一个元素为初始值折叠序列，空序列返回 ErrNoElements
func Reduce[T any](q Query[T], folder func(T, T) T) (T, error) {
	var acc T
	found := false
	for item := range q.iterate {
		if !found {
			acc = item
			found = true
			continue
		}
		acc = folder(acc, item)
	}
	if !found {
		return acc, ErrNoElements
	}
	return acc, nil
}

// SequenceEqual 判断两个序列长度相同且逐位相等
func SequenceEqual[T comparable](q1, q2 Query[T]) bool {
	return SequenceEqualFunc(q1, q2, func(a, b T) bool { return a == b })
}

// SequenceEqualFunc 按相等比较器判断两个序列逐位相等
func SequenceEqualFunc[T any](q1, q2 Query[T], equal EqualFunc[T]) bool {
	next, stop := iter.Pull(q2.iterate)
	defer stop()
	for item := range q1.iterate {
		other, ok := next()
		if !ok || !equal(item, other) {
			return false
		}
	}
	_, ok := next()
	return !ok
}
