package handler

import (
	"strconv"
	"strings"
	"time"

	"inventory/internal/usecase"

	"github.com/labstack/echo/v4"
)

const dateOnly = "2006-01-02"

// JSONを読み、validateタグで形をチェック
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return usecase.NewValidationError("invalid json", nil)
	}
	return c.Validate(req)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}

// 未指定なら0
func queryInt(c echo.Context, name string) (int, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, usecase.NewValidationError("invalid "+name, nil)
	}
	return n, nil
}

// 未指定ならnil
func queryInt64Ptr(c echo.Context, name string) (*int64, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, usecase.NewValidationError("invalid "+name, nil)
	}
	return &n, nil
}

func queryBool(c echo.Context, name string) (bool, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, usecase.NewValidationError("invalid "+name, nil)
	}
	return b, nil
}

// RFC3339 か YYYY-MM-DD。日付だけのtoはその日の終わりまで含める
func queryTime(c echo.Context, name string, endOfDay bool) (*time.Time, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, v)
	if err != nil {
		return nil, usecase.NewValidationError("invalid "+name, nil)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

type pageParams struct {
	limit  int
	offset int
}

func queryPage(c echo.Context) (pageParams, error) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return pageParams{}, err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return pageParams{}, err
	}
	return pageParams{limit: limit, offset: offset}, nil
}

func queryRange(c echo.Context) (*time.Time, *time.Time, error) {
	from, err := queryTime(c, "from", false)
	if err != nil {
		return nil, nil, err
	}
	to, err := queryTime(c, "to", true)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
