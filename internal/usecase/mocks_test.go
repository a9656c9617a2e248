package usecase_test

import (
	"context"
	"strings"
	"testing"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
	"inventory/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	inventory  repo.InventoryRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Categories() repo.CategoryRepository  { return r.categories }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.ProductView, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.ProductView)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindViewByID(ctx context.Context, id int64) (model.ProductView, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.ProductView)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) ListLowStock(ctx context.Context) ([]model.LowStockProduct, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.LowStockProduct)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

type CategoryCacheMock struct{ mock.Mock }

func (m *CategoryCacheMock) Get(ctx context.Context) ([]model.Category, bool, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Bool(1), args.Error(2)
}

func (m *CategoryCacheMock) Set(ctx context.Context, categories []model.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *CategoryCacheMock) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) FindForUpdate(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) CreateMovement(ctx context.Context, mv model.StockMovement) (model.StockMovement, error) {
	args := m.Called(ctx, mv)
	out, _ := args.Get(0).(model.StockMovement)
	return out, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindSummaryByID(ctx context.Context, orderID int64) (model.OrderSummary, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.OrderSummary)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.OrderSummary, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.OrderSummary)
	return items, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListDetailsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItemDetail, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItemDetail)
	return items, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type ReportRepoMock struct{ mock.Mock }

func (m *ReportRepoMock) StockSummary(ctx context.Context) ([]model.StockSummaryRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]model.StockSummaryRow)
	return rows, args.Error(1)
}

func (m *ReportRepoMock) MovementHistory(ctx context.Context, f repo.MovementHistoryFilter) ([]model.StockMovementView, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]model.StockMovementView)
	return rows, args.Error(1)
}

func (m *ReportRepoMock) RevenueSummary(ctx context.Context) (model.RevenueSummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(model.RevenueSummary)
	return s, args.Error(1)
}

func (m *ReportRepoMock) DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]model.DailyRevenue)
	return rows, args.Error(1)
}

func (m *ReportRepoMock) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]model.TopProduct)
	return rows, args.Error(1)
}

type SystemRepoMock struct{ mock.Mock }

func (m *SystemRepoMock) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// =====================
// Helpers
// =====================

// HTTPErrorの実装詳細に依存しない
func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func assertErrCode(t *testing.T, err error, status int, code string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "want HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Equal(t, code, he.Code)
	}
}
