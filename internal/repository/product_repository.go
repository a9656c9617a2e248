package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// 商品一覧の検索条件
type ProductListQuery struct {
	Q               string
	CategoryID      *int64
	Sort            string
	IncludeInactive bool
}

// 商品の永続化（保存・取得）だけを約束。在庫の増減はInventoryRepository
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.ProductView, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindViewByID(ctx context.Context, id int64) (model.ProductView, error)
	// 有効な商品で同名があるか（excludeIDは自分自身を除く用）
	ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error)
	ListLowStock(ctx context.Context) ([]model.LowStockProduct, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Deactivate(ctx context.Context, id int64) error
}
