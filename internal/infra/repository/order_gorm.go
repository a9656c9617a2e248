package repository

import (
	"context"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

// 注文＋明細件数
func (r *OrderGormRepository) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id AS order_id, o.customer_name, o.total_amount, o.status, o.notes,
			o.created_at AS order_date, COUNT(oi.id) AS item_count`).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Group("o.id, o.customer_name, o.total_amount, o.status, o.notes, o.created_at")
}

func (r *OrderGormRepository) FindSummaryByID(ctx context.Context, orderID int64) (model.OrderSummary, error) {
	var rows []model.OrderSummary
	if err := r.summaryQuery(ctx).Where("o.id = ?", orderID).Scan(&rows).Error; err != nil {
		return model.OrderSummary{}, err
	}
	if len(rows) == 0 {
		return model.OrderSummary{}, repo.ErrNotFound
	}
	return rows[0], nil
}

// 新しい順
func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.OrderSummary, error) {
	q := r.summaryQuery(ctx).Scopes(
		whereEq("o.status", optional(f.Status)),
		between("o.created_at", f.From, f.To),
		paginate(f.Limit, f.Offset),
	)

	items := []model.OrderSummary{}
	if err := q.Order("o.created_at desc").Order("o.id desc").Scan(&items).Error; err != nil {
		return []model.OrderSummary{}, err
	}
	return items, nil
}
