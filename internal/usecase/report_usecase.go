package usecase

import (
	"context"
	"strings"
	"time"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

const (
	defaultTopProducts = 10
	maxTopProducts     = 100
)

type ReportUsecase struct {
	reports repo.ReportRepository
}

func NewReportUsecase(reports repo.ReportRepository) *ReportUsecase {
	return &ReportUsecase{reports: reports}
}

func (u *ReportUsecase) StockSummary(ctx context.Context) ([]model.StockSummaryRow, error) {
	rows, err := u.reports.StockSummary(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return rows, nil
}

type MovementHistoryInput struct {
	ProductID *int64
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

func (u *ReportUsecase) MovementHistory(ctx context.Context, in MovementHistoryInput) ([]model.StockMovementView, error) {
	if in.ProductID != nil && *in.ProductID <= 0 {
		return nil, badRequest("invalid product_id")
	}
	typ := model.MovementType(strings.ToUpper(strings.TrimSpace(in.Type)))
	switch typ {
	case "", model.MovementIn, model.MovementOut:
	default:
		return nil, badRequest("type must be IN or OUT")
	}
	if err := validateRange(in.From, in.To); err != nil {
		return nil, err
	}
	if err := validatePage(in.Limit, in.Offset); err != nil {
		return nil, err
	}

	rows, err := u.reports.MovementHistory(ctx, repo.MovementHistoryFilter{
		ProductID:    in.ProductID,
		MovementType: typ,
		From:         in.From,
		To:           in.To,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, dbError(err)
	}
	return rows, nil
}

type RevenueOutput struct {
	Summary model.RevenueSummary `json:"summary"`
	Daily   []model.DailyRevenue `json:"daily"`
}

func (u *ReportUsecase) Revenue(ctx context.Context) (RevenueOutput, error) {
	summary, err := u.reports.RevenueSummary(ctx)
	if err != nil {
		return RevenueOutput{}, dbError(err)
	}
	daily, err := u.reports.DailyRevenue(ctx)
	if err != nil {
		return RevenueOutput{}, dbError(err)
	}
	return RevenueOutput{Summary: summary, Daily: daily}, nil
}

// limit=0なら10件
func (u *ReportUsecase) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	if limit < 0 || limit > maxTopProducts {
		return nil, badRequest("invalid limit")
	}
	if limit == 0 {
		limit = defaultTopProducts
	}

	rows, err := u.reports.TopProducts(ctx, limit)
	if err != nil {
		return nil, dbError(err)
	}
	return rows, nil
}
