package validator

import (
	"errors"
	"reflect"
	"strings"

	"inventory/internal/usecase"

	playground "github.com/go-playground/validator/v10"
)

// echo.Validator の実装。リクエストDTOの形だけを見る（業務ルールはusecase）
type RequestValidator struct {
	v *playground.Validate
}

func NewRequestValidator() *RequestValidator {
	v := playground.New(playground.WithRequiredStructEnabled())

	// エラーのフィールド名はjsonキーにそろえる
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var ves playground.ValidationErrors
	if !errors.As(err, &ves) {
		return usecase.NewValidationError("invalid request", nil)
	}

	details := make(map[string]any, len(ves))
	for _, fe := range ves {
		details[fieldPath(fe)] = rule(fe)
	}
	return usecase.NewValidationError(firstMessage(ves[0]), details)
}

// items[0].quantity のようなパス（先頭の構造体名は落とす）
func fieldPath(fe playground.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func rule(fe playground.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func firstMessage(fe playground.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " required"
	case "gt":
		return field + " must be > " + fe.Param()
	case "gte", "min":
		return field + " must be >= " + fe.Param()
	case "lte":
		return field + " must be <= " + fe.Param()
	case "max":
		return field + " too long"
	default:
		return "invalid " + field
	}
}
