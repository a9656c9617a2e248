package usecase_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
	"inventory/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStockFixture() (*TxManagerMock, *InventoryRepoMock) {
	inv := new(InventoryRepoMock)
	tx := new(TxManagerMock)
	tx.Repos = &TxReposMock{inventory: inv}
	tx.On("WithinTx", mock.Anything).Return(nil)
	return tx, inv
}

func TestStockUsecase_AddStock_InvalidQuantity(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewStockUsecase(tx)

	for _, qty := range []int64{0, -3, 1_000_000_001, math.MaxInt64} {
		_, err := uc.AddStock(context.Background(), 1, usecase.StockChangeInput{Quantity: qty})
		assertErrCode(t, err, http.StatusBadRequest, usecase.CodeValidation)
	}
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestStockUsecase_AddStock_Success_DefaultNote(t *testing.T) {
	ctx := context.Background()
	tx, inv := newStockFixture()

	inv.On("FindForUpdate", mock.Anything, int64(7)).
		Return(model.Product{ID: 7, Name: "Pen", StockQuantity: 10, IsActive: true}, nil)
	inv.On("IncreaseStock", mock.Anything, int64(7), int64(5)).Return(nil)
	inv.On("CreateMovement", mock.Anything, mock.MatchedBy(func(m model.StockMovement) bool {
		return m.ProductID == 7 &&
			m.MovementType == model.MovementIn &&
			m.Quantity == 5 &&
			m.PreviousStock == 10 &&
			m.NewStock == 15 &&
			m.Notes == "Manual stock addition"
	})).Return(model.StockMovement{ID: 99}, nil)

	uc := usecase.NewStockUsecase(tx)

	out, err := uc.AddStock(ctx, 7, usecase.StockChangeInput{Quantity: 5, Notes: "  "})
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.PreviousStock)
	assert.Equal(t, int64(15), out.NewStock)
	assert.Equal(t, int64(99), out.MovementID)
	assert.Contains(t, out.Message, "Pen")

	inv.AssertExpectations(t)
}

func TestStockUsecase_StockOut_Insufficient_NoWrites(t *testing.T) {
	ctx := context.Background()
	tx, inv := newStockFixture()

	inv.On("FindForUpdate", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Pen", StockQuantity: 10, IsActive: true}, nil)

	uc := usecase.NewStockUsecase(tx)

	_, err := uc.StockOut(ctx, 1, usecase.StockChangeInput{Quantity: 15})
	assertErrCode(t, err, http.StatusBadRequest, usecase.CodeInsufficientStock)

	he, _ := usecase.AsHTTPError(err)
	require.NotNil(t, he)
	assert.Equal(t, int64(10), he.Details["current_stock"])
	assert.Equal(t, int64(15), he.Details["requested"])

	inv.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	inv.AssertNotCalled(t, "CreateMovement", mock.Anything, mock.Anything)
}

func TestStockUsecase_StockOut_Success(t *testing.T) {
	ctx := context.Background()
	tx, inv := newStockFixture()

	inv.On("FindForUpdate", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Pen", StockQuantity: 10, IsActive: true}, nil)
	inv.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(7)).Return(true, nil)
	inv.On("CreateMovement", mock.Anything, mock.MatchedBy(func(m model.StockMovement) bool {
		return m.MovementType == model.MovementOut && m.PreviousStock == 10 && m.NewStock == 3 && m.Notes == "damaged"
	})).Return(model.StockMovement{ID: 5}, nil)

	uc := usecase.NewStockUsecase(tx)

	out, err := uc.StockOut(ctx, 1, usecase.StockChangeInput{Quantity: 7, Notes: "damaged"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.NewStock)

	inv.AssertExpectations(t)
}

func TestStockUsecase_StockOut_GuardedDecrementFails(t *testing.T) {
	ctx := context.Background()
	tx, inv := newStockFixture()

	inv.On("FindForUpdate", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Pen", StockQuantity: 10, IsActive: true}, nil)
	inv.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(7)).Return(false, nil)

	uc := usecase.NewStockUsecase(tx)

	_, err := uc.StockOut(ctx, 1, usecase.StockChangeInput{Quantity: 7})
	assertErrCode(t, err, http.StatusBadRequest, usecase.CodeInsufficientStock)
	inv.AssertNotCalled(t, "CreateMovement", mock.Anything, mock.Anything)
}

func TestStockUsecase_NotFoundAndInactive(t *testing.T) {
	ctx := context.Background()
	tx, inv := newStockFixture()

	inv.On("FindForUpdate", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)
	inv.On("FindForUpdate", mock.Anything, int64(2)).
		Return(model.Product{ID: 2, StockQuantity: 5, IsActive: false}, nil)

	uc := usecase.NewStockUsecase(tx)

	_, err := uc.AddStock(ctx, 404, usecase.StockChangeInput{Quantity: 1})
	assertErrCode(t, err, http.StatusNotFound, usecase.CodeNotFound)

	_, err = uc.AddStock(ctx, 2, usecase.StockChangeInput{Quantity: 1})
	assertErrCode(t, err, http.StatusBadRequest, usecase.CodeProductInactive)
}

func TestStockUsecase_DBError_Is500WithDetail(t *testing.T) {
	ctx := context.Background()
	tx, inv := newStockFixture()

	inv.On("FindForUpdate", mock.Anything, int64(1)).Return(model.Product{}, errors.New("connection reset"))

	uc := usecase.NewStockUsecase(tx)

	_, err := uc.AddStock(ctx, 1, usecase.StockChangeInput{Quantity: 1})
	assertErrCode(t, err, http.StatusInternalServerError, usecase.CodeInternal)
	assertErrContains(t, err, "connection reset")
}

// 上限を超える入庫は在庫を変えずに弾く（int64であふれさせない）
func TestStockUsecase_AddStock_ExceedsMaxStock_NoWrites(t *testing.T) {
	ctx := context.Background()
	tx, inv := newStockFixture()

	inv.On("FindForUpdate", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Pen", StockQuantity: 999_999_990, IsActive: true}, nil)

	uc := usecase.NewStockUsecase(tx)

	_, err := uc.AddStock(ctx, 1, usecase.StockChangeInput{Quantity: 11})
	assertErrCode(t, err, http.StatusBadRequest, usecase.CodeValidation)

	he, _ := usecase.AsHTTPError(err)
	require.NotNil(t, he)
	assert.Equal(t, int64(999_999_990), he.Details["current_stock"])

	inv.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
	inv.AssertNotCalled(t, "CreateMovement", mock.Anything, mock.Anything)

	// ちょうど上限までは入る
	inv.On("IncreaseStock", mock.Anything, int64(1), int64(10)).Return(nil)
	inv.On("CreateMovement", mock.Anything, mock.Anything).Return(model.StockMovement{ID: 3}, nil)

	out, err := uc.AddStock(ctx, 1, usecase.StockChangeInput{Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), out.NewStock)
}
