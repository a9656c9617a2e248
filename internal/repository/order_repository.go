package repository

import (
	"context"
	"time"

	"inventory/internal/domain/model"
)

type OrderListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindSummaryByID(ctx context.Context, orderID int64) (model.OrderSummary, error)
	List(ctx context.Context, f OrderListFilter) ([]model.OrderSummary, error)
}
