package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
	"inventory/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	tx         *TxManagerMock
	products   *ProductRepoMock
	categories *CategoryRepoMock
	inv        *InventoryRepoMock
	audit      *AuditRepoMock
}

func newProductFixture() productFixture {
	f := productFixture{
		tx:         new(TxManagerMock),
		products:   new(ProductRepoMock),
		categories: new(CategoryRepoMock),
		inv:        new(InventoryRepoMock),
		audit:      new(AuditRepoMock),
	}
	f.tx.Repos = &TxReposMock{
		products:   f.products,
		categories: f.categories,
		inventory:  f.inv,
		auditLogs:  f.audit,
	}
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	return f
}

func (f productFixture) usecase() *usecase.ProductUsecase {
	return usecase.NewProductUsecase(f.tx, f.products)
}

func TestProductUsecase_List_CategoryAllIgnored(t *testing.T) {
	f := newProductFixture()
	f.products.On("List", mock.Anything, repo.ProductListQuery{Q: "pen"}).Return([]model.ProductView{{ID: 1}}, nil)

	out, err := f.usecase().ListProducts(context.Background(), usecase.ListProductsInput{Q: " pen ", Category: "all"})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	f.products.AssertExpectations(t)
}

func TestProductUsecase_List_CategoryFilter(t *testing.T) {
	f := newProductFixture()
	f.products.On("List", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.CategoryID != nil && *q.CategoryID == 3 && q.Sort == "stock"
	})).Return([]model.ProductView{}, nil)

	_, err := f.usecase().ListProducts(context.Background(), usecase.ListProductsInput{Category: "3", Sort: "stock"})
	require.NoError(t, err)
	f.products.AssertExpectations(t)
}

func TestProductUsecase_List_InvalidParams(t *testing.T) {
	f := newProductFixture()

	_, err := f.usecase().ListProducts(context.Background(), usecase.ListProductsInput{Category: "abc"})
	assertErrContains(t, err, "invalid category")

	_, err = f.usecase().ListProducts(context.Background(), usecase.ListProductsInput{Sort: "price"})
	assertErrContains(t, err, "invalid sort")
}

func TestProductUsecase_Get_InactiveIsNotFound(t *testing.T) {
	f := newProductFixture()
	f.products.On("FindViewByID", mock.Anything, int64(5)).Return(model.ProductView{ID: 5, IsActive: false}, nil)
	f.products.On("FindViewByID", mock.Anything, int64(6)).Return(model.ProductView{}, repo.ErrNotFound)

	_, err := f.usecase().GetProduct(context.Background(), 5)
	assertErrCode(t, err, http.StatusNotFound, usecase.CodeNotFound)

	_, err = f.usecase().GetProduct(context.Background(), 6)
	assertErrCode(t, err, http.StatusNotFound, usecase.CodeNotFound)
}

func TestProductUsecase_Create_Validation(t *testing.T) {
	f := newProductFixture()

	cases := []struct {
		name string
		in   usecase.CreateProductInput
		want string
	}{
		{"name", usecase.CreateProductInput{Name: " ", CategoryID: 1}, "name required"},
		{"category", usecase.CreateProductInput{Name: "Pen"}, "category_id required"},
		{"price", usecase.CreateProductInput{Name: "Pen", CategoryID: 1, Price: decimal.NewFromInt(-1)}, "price"},
		{"stock", usecase.CreateProductInput{Name: "Pen", CategoryID: 1, StockQuantity: -1}, "stock_quantity"},
		{"reorder", usecase.CreateProductInput{Name: "Pen", CategoryID: 1, ReorderLevel: -1}, "reorder_level"},
		{"price too large", usecase.CreateProductInput{Name: "Pen", CategoryID: 1, Price: decimal.RequireFromString("100000000")}, "price must be <= 99999999.99"},
		{"stock too large", usecase.CreateProductInput{Name: "Pen", CategoryID: 1, StockQuantity: 1 << 62}, "stock_quantity must be <="},
		{"reorder too large", usecase.CreateProductInput{Name: "Pen", CategoryID: 1, ReorderLevel: 1 << 62}, "reorder_level must be <="},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.usecase().CreateProduct(context.Background(), tc.in)
			assertErrCode(t, err, http.StatusBadRequest, usecase.CodeValidation)
			assertErrContains(t, err, tc.want)
		})
	}
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestProductUsecase_Create_InvalidCategory(t *testing.T) {
	f := newProductFixture()
	f.categories.On("FindByID", mock.Anything, int64(9)).Return(model.Category{}, repo.ErrNotFound)

	_, err := f.usecase().CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Pen", CategoryID: 9})
	assertErrCode(t, err, http.StatusBadRequest, usecase.CodeInvalidCategory)
	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_Create_DuplicateName(t *testing.T) {
	f := newProductFixture()
	f.categories.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1}, nil)
	f.products.On("ExistsActiveName", mock.Anything, "Pen", int64(0)).Return(true, nil)

	_, err := f.usecase().CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Pen", CategoryID: 1})
	assertErrCode(t, err, http.StatusBadRequest, usecase.CodeDuplicateName)
}

func TestProductUsecase_Create_WithInitialStock_WritesMovementAndAudit(t *testing.T) {
	f := newProductFixture()
	f.categories.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1}, nil)
	f.products.On("ExistsActiveName", mock.Anything, "Pen", int64(0)).Return(false, nil)
	f.products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Pen" && p.IsActive && p.StockQuantity == 12 && p.Price.Equal(decimal.RequireFromString("1.99"))
	})).Return(model.Product{ID: 3, Name: "Pen", StockQuantity: 12, IsActive: true}, nil)
	f.inv.On("CreateMovement", mock.Anything, mock.MatchedBy(func(m model.StockMovement) bool {
		return m.ProductID == 3 && m.MovementType == model.MovementIn &&
			m.PreviousStock == 0 && m.NewStock == 12 && m.Notes == "Initial stock"
	})).Return(model.StockMovement{ID: 1}, nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreateProduct && l.ResourceID == 3 && l.BeforeJSON == "" && l.AfterJSON != ""
	})).Return(nil)
	f.products.On("FindViewByID", mock.Anything, int64(3)).Return(model.ProductView{ID: 3, Name: "Pen", CategoryName: "Office"}, nil)

	out, err := f.usecase().CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:          "Pen",
		CategoryID:    1,
		Price:         decimal.RequireFromString("1.99"),
		StockQuantity: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Office", out.CategoryName)

	f.products.AssertExpectations(t)
	f.inv.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

func TestProductUsecase_Create_ZeroStock_NoMovement(t *testing.T) {
	f := newProductFixture()
	f.categories.On("FindByID", mock.Anything, int64(1)).Return(model.Category{ID: 1}, nil)
	f.products.On("ExistsActiveName", mock.Anything, "Pen", int64(0)).Return(false, nil)
	f.products.On("Create", mock.Anything, mock.Anything).Return(model.Product{ID: 3, Name: "Pen", IsActive: true}, nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.products.On("FindViewByID", mock.Anything, int64(3)).Return(model.ProductView{ID: 3}, nil)

	_, err := f.usecase().CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Pen", CategoryID: 1})
	require.NoError(t, err)
	f.inv.AssertNotCalled(t, "CreateMovement", mock.Anything, mock.Anything)
}

func TestProductUsecase_Update_KeepsStock(t *testing.T) {
	f := newProductFixture()
	before := model.Product{ID: 3, Name: "Pen", CategoryID: 1, StockQuantity: 40, IsActive: true}

	f.products.On("FindByID", mock.Anything, int64(3)).Return(before, nil)
	f.categories.On("FindByID", mock.Anything, int64(2)).Return(model.Category{ID: 2}, nil)
	f.products.On("ExistsActiveName", mock.Anything, "Blue Pen", int64(3)).Return(false, nil)
	f.products.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Blue Pen" && p.CategoryID == 2 && p.StockQuantity == 40
	})).Return(nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateProduct && l.BeforeJSON != "" && l.AfterJSON != ""
	})).Return(nil)
	f.products.On("FindViewByID", mock.Anything, int64(3)).Return(model.ProductView{ID: 3, Name: "Blue Pen"}, nil)

	out, err := f.usecase().UpdateProduct(context.Background(), 3, usecase.UpdateProductInput{
		Name:       "Blue Pen",
		CategoryID: 2,
		Price:      decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "Blue Pen", out.Name)
	f.products.AssertExpectations(t)
}

func TestProductUsecase_Update_InactiveIsNotFound(t *testing.T) {
	f := newProductFixture()
	f.products.On("FindByID", mock.Anything, int64(3)).Return(model.Product{ID: 3, IsActive: false}, nil)

	_, err := f.usecase().UpdateProduct(context.Background(), 3, usecase.UpdateProductInput{Name: "x", CategoryID: 1})
	assertErrCode(t, err, http.StatusNotFound, usecase.CodeNotFound)
}

func TestProductUsecase_Delete_SoftDeleteWithAudit(t *testing.T) {
	f := newProductFixture()
	f.products.On("FindByID", mock.Anything, int64(3)).Return(model.Product{ID: 3, Name: "Pen", IsActive: true}, nil)
	f.products.On("Deactivate", mock.Anything, int64(3)).Return(nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeactivateProduct && l.ResourceType == model.AuditResourceProduct
	})).Return(nil)

	err := f.usecase().DeleteProduct(context.Background(), 3)
	require.NoError(t, err)
	f.products.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

func TestProductUsecase_Delete_Twice404(t *testing.T) {
	f := newProductFixture()
	f.products.On("FindByID", mock.Anything, int64(3)).Return(model.Product{ID: 3, IsActive: false}, nil)

	err := f.usecase().DeleteProduct(context.Background(), 3)
	assertErrCode(t, err, http.StatusNotFound, usecase.CodeNotFound)
	f.products.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}
