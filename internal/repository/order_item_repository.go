package repository

import (
	"context"

	"inventory/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListDetailsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItemDetail, error)
}
