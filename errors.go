package enumerable

import (
	"errors"
	"fmt"
)

// 终结操作返回的哨兵错误，可用 errors.Is 判断。
// 立即校验类（参数非法）在调用时 panic，panic 值包装 ErrInvalidArgument；
// 数据类错误只在实际迭代或求值时返回。
var (
	// ErrNoElements 序列为空
	ErrNoElements = errors.New("enumerable: sequence contains no elements")
	// ErrNoMatch 没有元素满足条件
	ErrNoMatch = errors.New("enumerable: no element satisfies the condition")
	// ErrMoreThanOneElement 序列包含多于一个元素
	ErrMoreThanOneElement = errors.New("enumerable: sequence contains more than one element")
	// ErrMoreThanOneMatch 多于一个元素满足条件
	ErrMoreThanOneMatch = errors.New("enumerable: more than one element satisfies the condition")
	// ErrInvalidArgument 参数非法
	ErrInvalidArgument = errors.New("enumerable: invalid argument")
	// ErrIndexOutOfBounds 索引越界
	ErrIndexOutOfBounds = errors.New("enumerable: index out of bounds")
	// ErrDimensionMismatch 两个配对序列长度不一致
	ErrDimensionMismatch = errors.New("enumerable: paired sequences have different lengths")
	// ErrInsufficientElements 元素个数不足以完成统计
	ErrInsufficientElements = errors.New("enumerable: not enough elements")
)

// invalidArgument 构造立即校验 panic 所用的错误值
func invalidArgument(op, reason string) error {
	return fmt.Errorf("enumerable: %s: %s: %w", op, reason, ErrInvalidArgument)
}

