package enumerable

import (
	"iter"
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// Product 计算数值序列的积，空序列返回乘法单位元 1
func Product[T constraints.Integer | constraints.Float | constraints.Complex](q Query[T]) T {
	return ProductBy(q, func(t T) T { return t })
}

// ProductBy 根据选择器计算成员积，空序列返回乘法单位元 1
func ProductBy[T any, R constraints.Integer | constraints.Float | constraints.Complex](q Query[T], selector func(T) R) R {
	product := R(1)
	for item := range q.iterate {
		product *= selector(item)
	}
	return product
}

// Welford 在线累积状态：单序列均值与平方和
type welfordState struct {
	n    int
	mean float64
	m2   float64
}

func (s *welfordState) observe(x float64) {
	s.n++
	d := x - s.mean
	s.mean += d / float64(s.n)
	s.m2 += d * (x - s.mean)
}

// Welford 在线累积状态：配对序列的均值、平方和与互积和
type comomentState struct {
	n     int
	meanX float64
	meanY float64
	m2x   float64
	m2y   float64
	c     float64
}

func (s *comomentState) observe(x, y float64) {
	s.n++
	n := float64(s.n)
	dx := x - s.meanX
	s.meanX += dx / n
	s.m2x += dx * (x - s.meanX)
	dy := y - s.meanY
	s.meanY += dy / n
	s.m2y += dy * (y - s.meanY)
	s.c += dx * (y - s.meanY)
}

// Variance 计算样本方差（除数 n-1），单遍在线算法，不缓冲元素。
// 元素少于 2 个时返回 ErrInsufficientElements
func Variance[T constraints.Integer | constraints.Float](q Query[T]) (float64, error) {
	return VarianceBy(q, func(t T) float64 { return float64(t) })
}

// VarianceBy 根据选择器计算样本方差（除数 n-1）
func VarianceBy[T any, R constraints.Integer | constraints.Float](q Query[T], selector func(T) R) (float64, error) {
	var s welfordState
	for item := range q.iterate {
		s.observe(float64(selector(item)))
	}
	if s.n < 2 {
		return 0, ErrInsufficientElements
	}
	return s.m2 / float64(s.n-1), nil
}

// VarianceP 计算总体方差（除数 n）
func VarianceP[T constraints.Integer | constraints.Float](q Query[T]) (float64, error) {
	return VariancePBy(q, func(t T) float64 { return float64(t) })
}

// VariancePBy 根据选择器计算总体方差（除数 n）
func VariancePBy[T any, R constraints.Integer | constraints.Float](q Query[T], selector func(T) R) (float64, error) {
	var s welfordState
	for item := range q.iterate {
		s.observe(float64(selector(item)))
	}
	if s.n < 2 {
		return 0, ErrInsufficientElements
	}
	return s.m2 / float64(s.n), nil
}

// StdDev 计算样本标准差
func StdDev[T constraints.Integer | constraints.Float](q Query[T]) (float64, error) {
	v, err := Variance(q)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// StdDevBy 根据选择器计算样本标准差
func StdDevBy[T any, R constraints.Integer | constraints.Float](q Query[T], selector func(T) R) (float64, error) {
	v, err := VarianceBy(q, selector)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// StdDevP 计算总体标准差
func StdDevP[T constraints.Integer | constraints.Float](q Query[T]) (float64, error) {
	v, err := VarianceP(q)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// StdDevPBy 根据选择器计算总体标准差
func StdDevPBy[T any, R constraints.Integer | constraints.Float](q Query[T], selector func(T) R) (float64, error) {
	v, err := VariancePBy(q, selector)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// 逐位配对两个序列并送入观察函数，长度不一致时返回 ErrDimensionMismatch
func pairSeries[T constraints.Integer | constraints.Float](x, y Query[T], observe func(x, y float64)) error {
	next, stop := iter.Pull(y.iterate)
	defer stop()
	for xv := range x.iterate {
		yv, ok := next()
		if !ok {
			return ErrDimensionMismatch
		}
		observe(float64(xv), float64(yv))
	}
	if _, ok := next(); ok {
		return ErrDimensionMismatch
	}
	return nil
}

// Covariance 计算两个序列的样本协方差（除数 n-1），单遍在线算法。
// 长度不一致返回 ErrDimensionMismatch，元素少于 2 个返回 ErrInsufficientElements；
// 任一侧为常数序列时协方差自然为 0
func Covariance[T constraints.Integer | constraints.Float](x, y Query[T]) (float64, error) {
	var s comomentState
	if err := pairSeries(x, y, s.observe); err != nil {
		return 0, err
	}
	if s.n < 2 {
		return 0, ErrInsufficientElements
	}
	return s.c / float64(s.n-1), nil
}

// CovarianceP 计算两个序列的总体协方差（除数 n）
func CovarianceP[T constraints.Integer | constraints.Float](x, y Query[T]) (float64, error) {
	var s comomentState
	if err := pairSeries(x, y, s.observe); err != nil {
		return 0, err
	}
	if s.n < 2 {
		return 0, ErrInsufficientElements
	}
	return s.c / float64(s.n), nil
}

// CovarianceBy 从单个序列投影配对值并计算样本协方差
func CovarianceBy[T any, R constraints.Integer | constraints.Float](q Query[T], xSelector, ySelector func(T) R) (float64, error) {
	var s comomentState
	for item := range q.iterate {
		s.observe(float64(xSelector(item)), float64(ySelector(item)))
	}
	if s.n < 2 {
		return 0, ErrInsufficientElements
	}
	return s.c / float64(s.n-1), nil
}

// CovariancePBy 从单个序列投影配对值并计算总体协方差
func CovariancePBy[T any, R constraints.Integer | constraints.Float](q Query[T], xSelector, ySelector func(T) R) (float64, error) {
	var s comomentState
	for item := range q.iterate {
		s.observe(float64(xSelector(item)), float64(ySelector(item)))
	}
	if s.n < 2 {
		return 0, ErrInsufficientElements
	}
	return s.c / float64(s.n), nil
}

// Correlation 计算两个序列的皮尔逊相关系数，样本与总体除数在公式中抵消。
// 任一侧标准差为零时相关系数无定义，返回包装 ErrInvalidArgument 的错误
func Correlation[T constraints.Integer | constraints.Float](x, y Query[T]) (float64, error) {
	var s comomentState
	if err := pairSeries(x, y, s.observe); err != nil {
		return 0, err
	}
	return resolveCorrelation(&s)
}

// CorrelationBy 从单个序列投影配对值并计算皮尔逊相关系数
func CorrelationBy[T any, R constraints.Integer | constraints.Float](q Query[T], xSelector, ySelector func(T) R) (float64, error) {
	var s comomentState
	for item := range q.iterate {
		s.observe(float64(xSelector(item)), float64(ySelector(item)))
	}
	return resolveCorrelation(&s)
}

func resolveCorrelation(s *comomentState) (float64, error) {
	if s.n < 2 {
		return 0, ErrInsufficientElements
	}
	if s.m2x == 0 || s.m2y == 0 {
		return 0, invalidArgument("Correlation", "series has zero standard deviation")
	}
	return s.c / math.Sqrt(s.m2x*s.m2y), nil
}

// PercentileStrategy 百分位秩的求值策略
type PercentileStrategy int

const (
	// PercentileLinear 在相邻两个元素之间线性插值（默认）
	PercentileLinear PercentileStrategy = iota
	// PercentileNearest 取最接近秩的元素
	PercentileNearest
	// PercentileLow 取不大于秩的元素
	PercentileLow
	// PercentileHigh 取不小于秩的元素
	PercentileHigh
	// PercentileMidpoint 取相邻两个元素的中点
	PercentileMidpoint
)

// 统计缓冲池，Percentile/Median 的临时缓冲用后归还
var statPool = NewBufferPool[float64]()

// Percentile 计算百分位数，p 取值范围 [0, 1]，超出范围时收敛到边界，
// p 为 NaN 时立即 panic。迭代时缓冲整个序列，不适用于无限序列。
// Percentile(q, 0) 等于最小值，Percentile(q, 1) 等于最大值；
// 空序列返回 ErrNoElements
func Percentile[T constraints.Integer | constraints.Float](q Query[T], p float64, strategy ...PercentileStrategy) (float64, error) {
	return PercentileBy(q, func(t T) float64 { return float64(t) }, p, strategy...)
}

// PercentileBy 根据选择器计算百分位数
func PercentileBy[T any, R constraints.Integer | constraints.Float](q Query[T], selector func(T) R, p float64, strategy ...PercentileStrategy) (float64, error) {
	if math.IsNaN(p) {
		panic(invalidArgument("Percentile", "p must not be NaN"))
	}
	p = min(max(p, 0), 1)
	resolved := PercentileLinear
	if len(strategy) > 0 {
		resolved = strategy[0]
	}

	values := statPool.Get(q.capacity)
	defer func() { statPool.Put(values) }()
	for item := range q.iterate {
		values = append(values, float64(selector(item)))
	}
	if len(values) == 0 {
		return 0, ErrNoElements
	}
	slices.Sort(values)
	return resolveRank(values, p, resolved), nil
}

// 在有序缓冲上按策略求分数秩 p*(n-1) 的值
func resolveRank(sorted []float64, p float64, strategy PercentileStrategy) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	switch strategy {
	case PercentileNearest:
		return sorted[int(math.Round(rank))]
	case PercentileLow:
		return sorted[lower]
	case PercentileHigh:
		return sorted[upper]
	case PercentileMidpoint:
		return (sorted[lower] + sorted[upper]) / 2
	default:
		return sorted[lower] + (rank-float64(lower))*(sorted[upper]-sorted[lower])
	}
}

// Median 计算中位数，等价于 0.5 处的百分位数；
// 偶数个元素时由策略决定取法，默认线性插值即两个中间值的平均
func Median[T constraints.Integer | constraints.Float](q Query[T], strategy ...PercentileStrategy) (float64, error) {
	return Percentile(q, 0.5, strategy...)
}

// MedianBy 根据选择器计算中位数
func MedianBy[T any, R constraints.Integer | constraints.Float](q Query[T], selector func(T) R, strategy ...PercentileStrategy) (float64, error) {
	return PercentileBy(q, selector, 0.5, strategy...)
}

// Mode 返回出现次数最多的元素，并列时取最先出现者；
// 完整遍历一次做频次统计，空序列返回 ErrNoElements
func Mode[T comparable](q Query[T]) (T, error) {
	counts, order := frequencies(q)
	if len(order) == 0 {
		var zero T
		return zero, ErrNoElements
	}
	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return best, nil
}

// Multimode 返回全部出现次数最多的元素，按首次出现顺序排列，
// 空序列返回空切片
func Multimode[T comparable](q Query[T]) []T {
	counts, order := frequencies(q)
	most := 0
	for _, key := range order {
		if counts[key] > most {
			most = counts[key]
		}
	}
	var modes []T
	for _, key := range order {
		if counts[key] == most {
			modes = append(modes, key)
		}
	}
	return modes
}

// 单遍频次统计，order 记录键首次出现顺序
func frequencies[T comparable](q Query[T]) (map[T]int, []T) {
	counts := make(map[T]int)
	var order []T
	for item := range q.iterate {
		if _, ok := counts[item]; !ok {
			order = append(order, item)
		}
		counts[item]++
	}
	return counts, order
}
