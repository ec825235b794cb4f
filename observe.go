package enumerable

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments 一组用于观察查询遍历的 OpenTelemetry 指标
type Instruments struct {
	items      metric.Int64Counter
	traversals metric.Int64Counter
	elapsed    metric.Float64Histogram
	attrs      metric.MeasurementOption
}

// NewInstruments 在给定 meter 上注册 <name>.items、<name>.traversals、
// <name>.duration_ms 三个指标，数据点带 query=name 属性
func NewInstruments(meter metric.Meter, name string) (*Instruments, error) {
	items, err := meter.Int64Counter(name+".items",
		metric.WithDescription("count of elements yielded"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	traversals, err := meter.Int64Counter(name+".traversals",
		metric.WithDescription("count of traversals started"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}
	elapsed, err := meter.Float64Histogram(name+".duration_ms",
		metric.WithDescription("wall time of one traversal"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	return &Instruments{
		items:      items,
		traversals: traversals,
		elapsed:    elapsed,
		attrs:      metric.WithAttributes(attribute.String("query", name)),
	}, nil
}

// Instrument 包装查询，每次遍历记录遍历次数、元素个数与耗时，
// 不改变序列内容；ins 为 nil 时原样返回
func Instrument[T any](q Query[T], ins *Instruments) Query[T] {
	if ins == nil {
		return q
	}
	return Query[T]{
		iterate: func(yield func(T) bool) {
			ctx := context.Background()
			start := time.Now()
			ins.traversals.Add(ctx, 1, ins.attrs)
			defer func() {
				ins.elapsed.Record(ctx, float64(time.Since(start).Microseconds())/1000, ins.attrs)
			}()
			for item := range q.iterate {
				ins.items.Add(ctx, 1, ins.attrs)
				if !yield(item) {
					return
				}
			}
		},
		capacity: q.capacity,
	}
}
