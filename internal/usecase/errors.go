package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// エラーコード（クライアントが分岐に使う）
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeDuplicateName     = "DUPLICATE_NAME"
	CodeProductInactive   = "PRODUCT_INACTIVE"
	CodeInvalidCategory   = "INVALID_CATEGORY"
	CodeInternal          = "INTERNAL_ERROR"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	// 500のとき元のエラー文字列
	Detail  string
	Details map[string]any
	cause   error
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d: %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.cause
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Code:    codeFor(status),
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func badRequest(message string) error {
	return &HTTPError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

func notFound(message string) error {
	return &HTTPError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func businessError(code string, message string, details map[string]any) error {
	return &HTTPError{Status: http.StatusBadRequest, Code: code, Message: message, Details: details}
}

// DBなど想定外のエラー。元のメッセージはDetailに残す
func dbError(err error) error {
	if he, ok := AsHTTPError(err); ok {
		return he
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "db error",
		Detail:  err.Error(),
		cause:   err,
	}
}

func insufficientStock(productID int64, productName string, current, requested int64) error {
	return businessError(CodeInsufficientStock, "insufficient stock", map[string]any{
		"product_id":    productID,
		"product_name":  productName,
		"current_stock": current,
		"requested":     requested,
	})
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusNotFound:
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// リクエスト形式の不正（フィールド名→ルール）
func NewValidationError(message string, details map[string]any) error {
	return &HTTPError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Details: details}
}
