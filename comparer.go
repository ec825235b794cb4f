package enumerable

import (
	"cmp"
	"reflect"
)

// EqualFunc 相等比较函数类型
type EqualFunc[T any] func(a, b T) bool

// EqualOf 返回 comparable 类型的默认相等比较器
func EqualOf[T comparable]() EqualFunc[T] {
	return func(a, b T) bool { return a == b }
}

// EqualBy 根据键选择器生成相等比较器
func EqualBy[T any, K comparable](selector func(T) K) EqualFunc[T] {
	return func(a, b T) bool { return selector(a) == selector(b) }
}

// DeepEqual 返回基于 reflect.DeepEqual 的结构相等比较器，
// 适用于无法用 == 比较的复合类型，代价是反射开销
func DeepEqual[T any]() EqualFunc[T] {
	return func(a, b T) bool { return reflect.DeepEqual(a, b) }
}

// CompareOf 返回有序类型的自然顺序比较器
func CompareOf[T cmp.Ordered]() CompareFunc[T] {
	return func(a, b T) int { return cmp.Compare(a, b) }
}

// CompareBy 根据键选择器生成升序比较器，等价于 Asc
func CompareBy[T any, K cmp.Ordered](selector func(T) K) CompareFunc[T] {
	return func(a, b T) int { return cmp.Compare(selector(a), selector(b)) }
}

// Reversed 反转比较器方向
func Reversed[T any](compare CompareFunc[T]) CompareFunc[T] {
	return func(a, b T) int { return compare(b, a) }
}

// EqualFromCompare 把顺序比较器退化为相等比较器
func EqualFromCompare[T any](compare CompareFunc[T]) EqualFunc[T] {
	return func(a, b T) bool { return compare(a, b) == 0 }
}
