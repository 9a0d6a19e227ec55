package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验 validate 标签, 返回首个失败字段
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return &FieldError{Field: firstError.Field(), Tag: firstError.Tag(), cause: err}
		}
		return err
	}
	return nil
}

// FieldError 保留原始校验错误, 可通过 errors.As 取出
type FieldError struct {
	Field string
	Tag   string
	cause error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field [%s] failed rule [%s]", e.Field, e.Tag)
}

func (e *FieldError) Unwrap() error {
	return e.cause
}
