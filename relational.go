package enumerable

// GroupBy 根据键选择器将元素分组，
// 组按键首次出现的顺序产出，组内元素保持源顺序
func GroupBy[T any, K comparable](q Query[T], keySelector func(T) K) Query[KV[K, []T]] {
	return GroupBySelect(q, keySelector, func(t T) T { return t })
}

// GroupBySelect 先分组后对每组内元素做映射
func GroupBySelect[T any, K comparable, V any](q Query[T], keySelector func(T) K, elementSelector func(T) V) Query[KV[K, []V]] {
	return Query[KV[K, []V]]{
		iterate: func(yield func(KV[K, []V]) bool) {
			groups := make(map[K][]V)
			var order []K
			for item := range q.iterate {
				key := keySelector(item)
				if _, ok := groups[key]; !ok {
					order = append(order, key)
				}
				groups[key] = append(groups[key], elementSelector(item))
			}
			for _, k := range order {
				if !yield(KV[K, []V]{Key: k, Value: groups[k]}) {
					return
				}
			}
		},
	}
}

// CountBy 统计每个键出现的次数，按键首次出现的顺序产出
func CountBy[T any, K comparable](q Query[T], keySelector func(T) K) Query[KV[K, int]] {
	return Query[KV[K, int]]{
		iterate: func(yield func(KV[K, int]) bool) {
			counts := make(map[K]int)
			var order []K
			for item := range q.iterate {
				key := keySelector(item)
				if _, ok := counts[key]; !ok {
					order = append(order, key)
				}
				counts[key]++
			}
			for _, k := range order {
				if !yield(KV[K, int]{Key: k, Value: counts[k]}) {
					return
				}
			}
		},
	}
}

// AggregateBy 按键折叠元素，seed 为每个新键生成初始累积值，
// 结果按键首次出现的顺序产出
func AggregateBy[T any, K comparable, A any](q Query[T], keySelector func(T) K, seed func() A, folder func(A, T) A) Query[KV[K, A]] {
	return Query[KV[K, A]]{
		iterate: func(yield func(KV[K, A]) bool) {
			accs := make(map[K]A)
			var order []K
			for item := range q.iterate {
				key := keySelector(item)
				acc, ok := accs[key]
				if !ok {
					order = append(order, key)
					acc = seed()
				}
				accs[key] = folder(acc, item)
			}
			for _, k := range order {
				if !yield(KV[K, A]{Key: k, Value: accs[k]}) {
					return
				}
			}
		},
	}
}

// Group 一个键及其全部成员，成员保持源顺序，构建后不可修改
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// Lookup 按键组织的只读分组集合，构建时立即消费整个源序列，
// 组按键首次出现的顺序排列
type Lookup[K comparable, T any] struct {
	groups []Group[K, T]
	index  map[K]int
}

// ToLookup 立即遍历序列并构建 Lookup
func ToLookup[T any, K comparable](q Query[T], keySelector func(T) K) *Lookup[K, T] {
	return ToLookupSelect(q, keySelector, func(t T) T { return t })
}

// ToLookupSelect 立即遍历序列，按键选择器和值选择器构建 Lookup
func ToLookupSelect[T any, K comparable, V any](q Query[T], keySelector func(T) K, valueSelector func(T) V) *Lookup[K, V] {
	l := &Lookup[K, V]{index: make(map[K]int)}
	for item := range q.iterate {
		key := keySelector(item)
		pos, ok := l.index[key]
		if !ok {
			pos = len(l.groups)
			l.index[key] = pos
			l.groups = append(l.groups, Group[K, V]{Key: key})
		}
		l.groups[pos].Items = append(l.groups[pos].Items, valueSelector(item))
	}
	return l
}

// Count 返回组的个数
func (l *Lookup[K, T]) Count() int {
	return len(l.groups)
}

// Contains 判断键是否存在
func (l *Lookup[K, T]) Contains(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Get 返回指定键的成员查询，键不存在时返回空查询
func (l *Lookup[K, T]) Get(key K) Query[T] {
	pos, ok := l.index[key]
	if !ok {
		return Empty[T]()
	}
	return From(l.groups[pos].Items)
}

// Groups 返回全部分组，调用方不应修改
func (l *Lookup[K, T]) Groups() []Group[K, T] {
	return l.groups
}

// Keys 按首次出现顺序返回全部键
func (l *Lookup[K, T]) Keys() []K {
	keys := make([]K, len(l.groups))
	for i, g := range l.groups {
		keys[i] = g.Key
	}
	return keys
}

// Join 按键关联两个序列，内表在外表流式遍历前一次性物化为查找表；
// 同键多条记录做笛卡尔配对，结果保持外表顺序
func Join[O, I any, K comparable, R any](outer Query[O], inner Query[I], outerKey func(O) K, innerKey func(I) K, selector func(O, I) R) Query[R] {
	return Query[R]{
		iterate: func(yield func(R) bool) {
			members := innerIndex(inner, innerKey)
			for o := range outer.iterate {
				for _, i := range members[outerKey(o)] {
					if !yield(selector(o, i)) {
						return
					}
				}
			}
		},
	}
}

// LeftJoin 按键左关联两个序列，没有匹配的外表元素也产出一行，
// 此时内表参数为零值且 ok 为 false
func LeftJoin[O, I any, K comparable, R any](outer Query[O], inner Query[I], outerKey func(O) K, innerKey func(I) K, selector func(o O, i I, ok bool) R) Query[R] {
	return Query[R]{
		iterate: func(yield func(R) bool) {
			members := innerIndex(inner, innerKey)
			for o := range outer.iterate {
				matches := members[outerKey(o)]
				if len(matches) == 0 {
					var zero I
					if !yield(selector(o, zero, false)) {
						return
					}
					continue
				}
				for _, i := range matches {
					if !yield(selector(o, i, true)) {
						return
					}
				}
			}
		},
	}
}

// GroupJoin 按键把内表全部匹配成员作为整体与外表元素配对，
// 没有匹配时成员切片为空
func GroupJoin[O, I any, K comparable, R any](outer Query[O], inner Query[I], outerKey func(O) K, innerKey func(I) K, selector func(O, []I) R) Query[R] {
	return Query[R]{
		iterate: func(yield func(R) bool) {
			members := innerIndex(inner, innerKey)
			for o := range outer.iterate {
				if !yield(selector(o, members[outerKey(o)])) {
					return
				}
			}
		},
	}
}

// 物化内表为键到成员的索引，成员保持源顺序
func innerIndex[I any, K comparable](inner Query[I], innerKey func(I) K) map[K][]I {
	members := make(map[K][]I)
	for i := range inner.iterate {
		key := innerKey(i)
		members[key] = append(members[key], i)
	}
	return members
}
