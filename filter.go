package enumerable

// Where 过滤元素
func (q Query[T]) Where(predicate func(T) bool) Query[T] {
	if q.fastSlice != nil {
		source := q.fastSlice
		var combinedPred func(T) bool
		if q.fastWhere == nil {
			combinedPred = predicate
		} else {
			oldPred := q.fastWhere
			combinedPred = func(t T) bool { return oldPred(t) && predicate(t) }
		}
		return Query[T]{
			iterate: func(yield func(T) bool) {
				for _, item := range source {
					if combinedPred(item) {
						if !yield(item) {
							break
						}
					}
				}
			},
			fastSlice: source,
			fastWhere: combinedPred,
			capacity:  q.capacity,
		}
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			for item := range q.iterate {
				if predicate(item) {
					if !yield(item) {
						break
					}
				}
			}
		},
		capacity: q.capacity,
	}
}

// WhereIndexed 带索引过滤元素，索引从 0 开始且每次遍历重新计数
func (q Query[T]) WhereIndexed(predicate func(int, T) bool) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			index := 0
			for item := range q.iterate {
				if predicate(index, item) {
					if !yield(item) {
						break
					}
				}
				index++
			}
		},
	}
}

// Skip 跳过前 N 个元素
func (q Query[T]) Skip(count int) Query[T] {
	if q.fastSlice != nil && q.fastWhere == nil {
		if count >= len(q.fastSlice) {
			return Empty[T]()
		}
		if count <= 0 {
			return q
		}
		return From(q.fastSlice[count:])
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			n := count
			for item := range q.iterate {
				if n > 0 {
					n--
					continue
				}
				if !yield(item) {
					break
				}
			}
		},
	}
}

// Take 获取前 N 个元素
func (q Query[T]) Take(count int) Query[T] {
	if q.fastSlice != nil && q.fastWhere == nil {
		if count <= 0 {
			return Empty[T]()
		}
		if count >= len(q.fastSlice) {
			return q
		}
		return From(q.fastSlice[:count])
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			n := count
			for item := range q.iterate {
				if n <= 0 {
					break
				}
				n--
				if !yield(item) {
					break
				}
			}
		},
	}
}

// TakeWhile 获取满足条件的元素，一旦不满足则停止
func (q Query[T]) TakeWhile(predicate func(T) bool) Query[T] {
	if q.fastSlice != nil {
		source := q.fastSlice
		preFilter := q.fastWhere
		return Query[T]{
			iterate: func(yield func(T) bool) {
				for _, item := range source {
					if preFilter != nil && !preFilter(item) {
						continue
					}
					if !predicate(item) {
						break
					}
					if !yield(item) {
						break
					}
				}
			},
		}
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			for item := range q.iterate {
				if !predicate(item) {
					break
				}
				if !yield(item) {
					break
				}
			}
		},
	}
}

// TakeWhileIndexed 带索引获取满足条件的元素，一旦不满足则停止
func (q Query[T]) TakeWhileIndexed(predicate func(int, T) bool) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			index := 0
			for item := range q.iterate {
				if !predicate(index, item) {
					break
				}
				index++
				if !yield(item) {
					break
				}
			}
		},
	}
}

// SkipWhile 跳过满足条件的元素，之后全部获取
func (q Query[T]) SkipWhile(predicate func(T) bool) Query[T] {
	if q.fastSlice != nil {
		source := q.fastSlice
		preFilter := q.fastWhere
		return Query[T]{
			iterate: func(yield func(T) bool) {
				skipping := true
				for _, item := range source {
					if preFilter != nil && !preFilter(item) {
						continue
					}
					if skipping {
						if predicate(item) {
							continue
						}
						skipping = false
					}
					if !yield(item) {
						break
					}
				}
			},
		}
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			skipping := true
			for item := range q.iterate {
				if skipping {
					if predicate(item) {
						continue
					}
					skipping = false
				}
				if !yield(item) {
					break
				}
			}
		},
	}
}

// SkipWhileIndexed 带索引跳过满足条件的元素，之后全部获取
func (q Query[T]) SkipWhileIndexed(predicate func(int, T) bool) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			index := 0
			skipping := true
			for item := range q.iterate {
				if skipping {
					if predicate(index, item) {
						index++
						continue
					}
					skipping = false
				}
				index++
				if !yield(item) {
					break
				}
			}
		},
	}
}

// TakeLast 获取最后 N 个元素，内部使用环形缓冲，不适用于无限序列
func (q Query[T]) TakeLast(count int) Query[T] {
	if count <= 0 {
		return Empty[T]()
	}
	if q.fastSlice != nil && q.fastWhere == nil {
		if count >= len(q.fastSlice) {
			return q
		}
		return From(q.fastSlice[len(q.fastSlice)-count:])
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			buf := make([]T, 0, count)
			pos := 0
			for item := range q.iterate {
				if len(buf) < count {
					buf = append(buf, item)
					continue
				}
				buf[pos] = item
				pos = (pos + 1) % count
			}
			for i := 0; i < len(buf); i++ {
				if !yield(buf[(pos+i)%len(buf)]) {
					return
				}
			}
		},
	}
}

// SkipLast 跳过最后 N 个元素，内部使用环形缓冲延迟输出，不适用于无限序列
func (q Query[T]) SkipLast(count int) Query[T] {
	if count <= 0 {
		return q
	}
	if q.fastSlice != nil && q.fastWhere == nil {
		if count >= len(q.fastSlice) {
			return Empty[T]()
		}
		return From(q.fastSlice[:len(q.fastSlice)-count])
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			buf := make([]T, 0, count)
			pos := 0
			for item := range q.iterate {
				if len(buf) < count {
					buf = append(buf, item)
					continue
				}
				if !yield(buf[pos]) {
					return
				}
				buf[pos] = item
				pos = (pos + 1) % count
			}
		},
	}
}

// Page 分页查询
func (q Query[T]) Page(page, pageSize int) Query[T] {
	return q.Skip((page - 1) * pageSize).Take(pageSize)
}

// Append 在序列末尾追加若干元素
func (q Query[T]) Append(items ...T) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			if q.fastSlice != nil {
				source := q.fastSlice
				predicate := q.fastWhere
				for _, t := range source {
					if predicate != nil && !predicate(t) {
						continue
					}
					if !yield(t) {
						return
					}
				}
			} else {
				for t := range q.iterate {
					if !yield(t) {
						return
					}
				}
			}
			for _, item := range items {
				if !yield(item) {
					return
				}
			}
		},
	}
}

// Prepend 在序列开头插入若干元素
func (q Query[T]) Prepend(items ...T) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			for _, item := range items {
				if !yield(item) {
					return
				}
			}
			if q.fastSlice != nil {
				source := q.fastSlice
				predicate := q.fastWhere
				for _, t := range source {
					if predicate != nil && !predicate(t) {
						continue
					}
					if !yield(t) {
						return
					}
				}
			} else {
				for t := range q.iterate {
					if !yield(t) {
						return
					}
				}
			}
		},
	}
}

// Concat 连接两个序列
func (q Query[T]) Concat(q2 Query[T]) Query[T] {
	return Query[T]{
		iterate: func(yield func(T) bool) {
			if q.fastSlice != nil {
				source := q.fastSlice
				predicate := q.fastWhere
				for _, t := range source {
					if predicate != nil && !predicate(t) {
						continue
					}
					if !yield(t) {
						return
					}
				}
			} else {
				for t := range q.iterate {
					if !yield(t) {
						return
					}
				}
			}

			if q2.fastSlice != nil {
				source := q2.fastSlice
				predicate := q2.fastWhere
				for _, t := range source {
					if predicate != nil && !predicate(t) {
						continue
					}
					if !yield(t) {
						return
					}
				}
			} else {
				for t := range q2.iterate {
					if !yield(t) {
						return
					}
				}
			}
		},
	}
}

// Cycle 循环整个序列。省略 count 时为无限循环，要求源可重复遍历；
// 源为空时立即结束，避免空转
func (q Query[T]) Cycle(count ...int) Query[T] {
	times := -1
	if len(count) > 0 {
		times = count[0]
		if times <= 0 {
			return Empty[T]()
		}
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			for round := 0; times < 0 || round < times; round++ {
				emitted := false
				for item := range q.iterate {
					emitted = true
					if !yield(item) {
						return
					}
				}
				if !emitted {
					return
				}
			}
		},
	}
}

// DefaultIfEmpty 空序列时产生一个默认值，省略参数时为零值
func (q Query[T]) DefaultIfEmpty(defaultValue ...T) Query[T] {
	var def T
	if len(defaultValue) > 0 {
		def = defaultValue[0]
	}
	if q.fastSlice != nil && q.fastWhere == nil {
		if len(q.fastSlice) == 0 {
			return From([]T{def})
		}
		return q
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			empty := true
			for item := range q.iterate {
				empty = false
				if !yield(item) {
					return
				}
			}
			if empty {
				yield(def)
			}
		},
	}
}

// Partition 按条件把序列拆成（满足，不满足）两个查询。
// 两个结果各自独立遍历源序列，源须可重复遍历，
// 一次性源会被先消费的一侧耗尽，另一侧只会得到空序列
func (q Query[T]) Partition(predicate func(T) bool) (Query[T], Query[T]) {
	return q.Where(predicate), q.Where(func(t T) bool { return !predicate(t) })
}

// Span 把序列拆成（满足条件的前缀，其余部分）两个查询。
// 两个结果各自独立遍历源序列，源须可重复遍历，
// 一次性源的前缀会被第一个查询消费，第二个查询只看到残余元素
func (q Query[T]) Span(predicate func(T) bool) (Query[T], Query[T]) {
	return q.TakeWhile(predicate), q.SkipWhile(predicate)
}
