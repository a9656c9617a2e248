package repository

import (
	"context"

	"inventory/internal/domain/model"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}
	return nil
}

// 明細＋商品名・説明・カテゴリ名
func (r *OrderItemGormRepository) ListDetailsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItemDetail, error) {
	items := []model.OrderItemDetail{}
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`oi.id AS order_item_id, oi.order_id, oi.product_id, p.name AS product_name,
			p.description, c.name AS category_name, oi.quantity, oi.unit_price,
			oi.quantity * oi.unit_price AS total_price`).
		Joins("JOIN products p ON p.id = oi.product_id").
		Joins("JOIN categories c ON c.id = p.category_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id asc").
		Scan(&items).Error
	if err != nil {
		return []model.OrderItemDetail{}, err
	}
	return items, nil
}
