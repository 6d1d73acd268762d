package dto

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/Dhruv-477/SGPA-calculator/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator 返回共享的校验器实例（注册了 notblank 规则）
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Validate 校验结构体，失败时包装为 ErrValidation
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return wrapValidationError(err)
	}
	return nil
}

// ValidateVar 校验单个字段值
func ValidateVar(field any, tag string) error {
	if err := Validator().Var(field, tag); err != nil {
		return wrapValidationError(err)
	}
	return nil
}

func wrapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if field == "" {
			field = "value"
		}
		msgs = append(msgs, fmt.Sprintf("%s failed '%s'", field, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
}
