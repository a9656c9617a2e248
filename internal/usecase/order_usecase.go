package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

const maxPageLimit = 500

type OrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func NewOrderUsecase(orders repo.OrderRepository, orderItems repo.OrderItemRepository) *OrderUsecase {
	return &OrderUsecase{orders: orders, orderItems: orderItems}
}

type ListOrdersInput struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type OrderDetailOutput struct {
	Order model.OrderSummary      `json:"order"`
	Items []model.OrderItemDetail `json:"items"`
}

// 新しい順
func (u *OrderUsecase) List(ctx context.Context, in ListOrdersInput) ([]model.OrderSummary, error) {
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if status != "" && model.OrderStatus(status) != model.OrderStatusCompleted {
		return nil, badRequest("invalid status")
	}
	if err := validateRange(in.From, in.To); err != nil {
		return nil, err
	}
	if err := validatePage(in.Limit, in.Offset); err != nil {
		return nil, err
	}

	items, err := u.orders.List(ctx, repo.OrderListFilter{
		Status: status,
		From:   in.From,
		To:     in.To,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

func (u *OrderUsecase) Detail(ctx context.Context, orderID int64) (OrderDetailOutput, error) {
	if orderID <= 0 {
		return OrderDetailOutput{}, badRequest("invalid order id")
	}

	o, err := u.orders.FindSummaryByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderDetailOutput{}, notFound("order not found")
	}
	if err != nil {
		return OrderDetailOutput{}, dbError(err)
	}

	items, err := u.orderItems.ListDetailsByOrderID(ctx, orderID)
	if err != nil {
		return OrderDetailOutput{}, dbError(err)
	}
	return OrderDetailOutput{Order: o, Items: items}, nil
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return badRequest("from must be before to")
	}
	return nil
}

// limit=0は既定値（リポジトリ側で補う）
func validatePage(limit, offset int) error {
	if limit < 0 || limit > maxPageLimit {
		return badRequest("invalid limit")
	}
	if offset < 0 {
		return badRequest("invalid offset")
	}
	return nil
}
