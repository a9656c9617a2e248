package repository

import (
	"context"
	"time"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"

	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// 有効な商品ごとに入出庫数と金額を集計
func (r *ReportGormRepository) StockSummary(ctx context.Context) ([]model.StockSummaryRow, error) {
	items := []model.StockSummaryRow{}
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select(`p.id AS product_id, p.name AS product_name, c.name AS category_name,
			p.stock_quantity, p.reorder_level AS min_stock_level, p.price,
			COALESCE(SUM(CASE WHEN sm.movement_type = 'IN' THEN sm.quantity ELSE 0 END), 0) AS total_in,
			COALESCE(SUM(CASE WHEN sm.movement_type = 'OUT' THEN sm.quantity ELSE 0 END), 0) AS total_out,
			COALESCE(SUM(CASE WHEN sm.movement_type = 'IN' THEN sm.quantity * p.price ELSE 0 END), 0) AS total_in_value,
			COALESCE(SUM(CASE WHEN sm.movement_type = 'OUT' THEN sm.quantity * p.price ELSE 0 END), 0) AS total_out_value,
			p.stock_quantity AS net_stock`).
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN stock_movements sm ON sm.product_id = p.id").
		Where("p.is_active = ?", true).
		Group("p.id, p.name, c.name, p.stock_quantity, p.reorder_level, p.price").
		Order("p.name asc").
		Scan(&items).Error
	if err != nil {
		return []model.StockSummaryRow{}, err
	}
	return items, nil
}

// 新しい順
func (r *ReportGormRepository) MovementHistory(ctx context.Context, f repo.MovementHistoryFilter) ([]model.StockMovementView, error) {
	q := r.db.WithContext(ctx).
		Table("stock_movements AS sm").
		Select(`sm.id AS movement_id, sm.product_id, p.name AS product_name, c.name AS category_name,
			sm.movement_type, sm.quantity, sm.previous_stock, sm.new_stock, sm.notes,
			sm.created_at AS movement_date`).
		Joins("JOIN products p ON p.id = sm.product_id").
		Joins("JOIN categories c ON c.id = p.category_id").
		Scopes(
			whereEq("sm.product_id", f.ProductID),
			whereEq("sm.movement_type", optional(f.MovementType)),
			between("sm.created_at", f.From, f.To),
			paginate(f.Limit, f.Offset),
		)

	items := []model.StockMovementView{}
	if err := q.Order("sm.created_at desc").Order("sm.id desc").Scan(&items).Error; err != nil {
		return []model.StockMovementView{}, err
	}
	return items, nil
}

// COMPLETEDの注文だけを対象にする
func (r *ReportGormRepository) RevenueSummary(ctx context.Context) (model.RevenueSummary, error) {
	var out model.RevenueSummary
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select(`COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COALESCE(AVG(total_amount), 0) AS average_order_value`).
		Where("status = ?", model.OrderStatusCompleted).
		Scan(&out).Error
	if err != nil {
		return model.RevenueSummary{}, err
	}
	out.TotalRevenue = out.TotalRevenue.Round(2)
	out.AverageOrderValue = out.AverageOrderValue.Round(2)

	// 最初・最後の注文日時（集計関数だとsqliteで型が落ちるので行で取る）
	if out.TotalOrders > 0 {
		first, err := r.edgeOrderDate(ctx, "created_at asc")
		if err != nil {
			return model.RevenueSummary{}, err
		}
		last, err := r.edgeOrderDate(ctx, "created_at desc")
		if err != nil {
			return model.RevenueSummary{}, err
		}
		out.FirstOrderDate = &first
		out.LastOrderDate = &last
	}
	return out, nil
}

func (r *ReportGormRepository) edgeOrderDate(ctx context.Context, order string) (time.Time, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", model.OrderStatusCompleted).
		Order(order).Order("id asc").
		Take(&o).Error
	if err != nil {
		return time.Time{}, err
	}
	return o.CreatedAt, nil
}

// 日別売上（新しい日から）
func (r *ReportGormRepository) DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error) {
	day := r.dayExpr("created_at")

	items := []model.DailyRevenue{}
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select(day+" AS order_day, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS daily_revenue").
		Where("status = ?", model.OrderStatusCompleted).
		Group(day).
		Order("order_day desc").
		Scan(&items).Error
	if err != nil {
		return []model.DailyRevenue{}, err
	}
	return items, nil
}

// 売上金額の多い順
func (r *ReportGormRepository) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	items := []model.TopProduct{}
	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`p.id AS product_id, p.name AS product_name, c.name AS category_name,
			SUM(oi.quantity) AS total_sold,
			SUM(oi.quantity * oi.unit_price) AS total_revenue,
			p.price`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Joins("JOIN categories c ON c.id = p.category_id").
		Where("o.status = ?", model.OrderStatusCompleted).
		Group("p.id, p.name, c.name, p.price").
		Order("total_revenue desc").Order("p.id asc").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return []model.TopProduct{}, err
	}
	return items, nil
}

// 日付の切り出しはDBごとに書き方が違う
func (r *ReportGormRepository) dayExpr(col string) string {
	if r.db.Dialector.Name() == "sqlite" {
		return "DATE(" + col + ")"
	}
	return "TO_CHAR(" + col + ", 'YYYY-MM-DD')"
}
