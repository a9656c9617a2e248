package repository

import (
	"context"
	"time"

	"inventory/internal/domain/model"
)

// 在庫移動履歴の絞り込み条件
type MovementHistoryFilter struct {
	ProductID    *int64
	MovementType model.MovementType
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// 集計はすべてSQLで毎回計算する
type ReportRepository interface {
	StockSummary(ctx context.Context) ([]model.StockSummaryRow, error)
	MovementHistory(ctx context.Context, f MovementHistoryFilter) ([]model.StockMovementView, error)
	RevenueSummary(ctx context.Context) (model.RevenueSummary, error)
	DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
}
