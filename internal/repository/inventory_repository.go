package repository

import (
	"context"

	"inventory/internal/domain/model"
)

type InventoryRepository interface {
	// 商品行をロックして取得（同時更新対策）
	FindForUpdate(ctx context.Context, productID int64) (model.Product, error)

	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫移動を台帳に追記
	CreateMovement(ctx context.Context, m model.StockMovement) (model.StockMovement, error)
}
