package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
	"inventory/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderUsecase_List_InvalidFilters(t *testing.T) {
	uc := usecase.NewOrderUsecase(new(OrderRepoMock), new(OrderItemRepoMock))
	from := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	cases := []struct {
		name string
		in   usecase.ListOrdersInput
		want string
	}{
		{"status", usecase.ListOrdersInput{Status: "PENDING"}, "invalid status"},
		{"range", usecase.ListOrdersInput{From: &from, To: &to}, "from must be before to"},
		{"limit", usecase.ListOrdersInput{Limit: 501}, "invalid limit"},
		{"offset", usecase.ListOrdersInput{Offset: -1}, "invalid offset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.List(context.Background(), tc.in)
			assertErrContains(t, err, tc.want)
		})
	}
}

func TestOrderUsecase_List_PassesFilter(t *testing.T) {
	orders := new(OrderRepoMock)
	orders.On("List", mock.Anything, repo.OrderListFilter{Status: "COMPLETED", Limit: 20}).
		Return([]model.OrderSummary{{OrderID: 1, ItemCount: 2}}, nil)

	uc := usecase.NewOrderUsecase(orders, new(OrderItemRepoMock))

	out, err := uc.List(context.Background(), usecase.ListOrdersInput{Status: "completed", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	orders.AssertExpectations(t)
}

func TestOrderUsecase_Detail(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	orders.On("FindSummaryByID", mock.Anything, int64(1)).Return(model.OrderSummary{OrderID: 1}, nil)
	orders.On("FindSummaryByID", mock.Anything, int64(2)).Return(model.OrderSummary{}, repo.ErrNotFound)
	items.On("ListDetailsByOrderID", mock.Anything, int64(1)).Return([]model.OrderItemDetail{{OrderItemID: 10}}, nil)

	uc := usecase.NewOrderUsecase(orders, items)

	out, err := uc.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Order.OrderID)
	assert.Len(t, out.Items, 1)

	_, err = uc.Detail(context.Background(), 2)
	assertErrCode(t, err, http.StatusNotFound, usecase.CodeNotFound)
}
