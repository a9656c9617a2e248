package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	maxNameLen  = 255
	maxQueryLen = 100
	noteInitial = "Initial stock"
)

// products.price numeric(10,2) の上限
var maxPrice = decimal.RequireFromString("99999999.99")

type ProductUsecase struct {
	tx          repo.TransactionManager
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(tx repo.TransactionManager, productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{
		tx:          tx,
		productRepo: productRepo,
	}
}

// GET /api/products の入力
type ListProductsInput struct {
	Q string
	// "all" または空なら絞り込みなし
	Category        string
	Sort            string
	IncludeInactive bool
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.ProductView, error) {
	q := strings.TrimSpace(in.Q)
	if len(q) > maxQueryLen {
		return nil, badRequest("q too long")
	}
	switch in.Sort {
	case "", "name", "newest", "stock":
	default:
		return nil, badRequest("invalid sort")
	}

	query := repo.ProductListQuery{
		Q:               q,
		Sort:            in.Sort,
		IncludeInactive: in.IncludeInactive,
	}
	if c := strings.TrimSpace(in.Category); c != "" && c != "all" {
		id, err := strconv.ParseInt(c, 10, 64)
		if err != nil || id <= 0 {
			return nil, badRequest("invalid category")
		}
		query.CategoryID = &id
	}

	items, err := u.productRepo.List(ctx, query)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.ProductView, error) {
	if productID <= 0 {
		return model.ProductView{}, badRequest("invalid product id")
	}

	p, err := u.productRepo.FindViewByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.ProductView{}, notFound("product not found")
	}
	if err != nil {
		return model.ProductView{}, dbError(err)
	}

	// 論理削除済みは存在しない扱い
	if !p.IsActive {
		return model.ProductView{}, notFound("product not found")
	}
	return p, nil
}

func (u *ProductUsecase) ListLowStock(ctx context.Context) ([]model.LowStockProduct, error) {
	items, err := u.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

type CreateProductInput struct {
	Name          string
	Description   string
	CategoryID    int64
	Price         decimal.Decimal
	StockQuantity int64
	ReorderLevel  int64
}

type UpdateProductInput struct {
	Name         string
	Description  string
	CategoryID   int64
	Price        decimal.Decimal
	ReorderLevel int64
}

func validateProductFields(name string, categoryID int64, price decimal.Decimal, reorderLevel int64) error {
	if name == "" {
		return badRequest("name required")
	}
	if len(name) > maxNameLen {
		return badRequest("name too long")
	}
	if categoryID <= 0 {
		return badRequest("category_id required")
	}
	if price.IsNegative() {
		return badRequest("price must be >= 0")
	}
	if price.Round(2).GreaterThan(maxPrice) {
		return badRequest("price must be <= " + maxPrice.String())
	}
	if reorderLevel < 0 {
		return badRequest("reorder_level must be >= 0")
	}
	if reorderLevel > maxStockQuantity {
		return badRequest(fmt.Sprintf("reorder_level must be <= %d", maxStockQuantity))
	}
	return nil
}

// 商品作成。初期在庫があればIN移動も同じTxで残す
func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.ProductView, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateProductFields(name, in.CategoryID, in.Price, in.ReorderLevel); err != nil {
		return model.ProductView{}, err
	}
	if in.StockQuantity < 0 {
		return model.ProductView{}, badRequest("stock_quantity must be >= 0")
	}
	if in.StockQuantity > maxStockQuantity {
		return model.ProductView{}, badRequest(fmt.Sprintf("stock_quantity must be <= %d", maxStockQuantity))
	}

	var out model.ProductView
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := ensureCategory(ctx, r, in.CategoryID); err != nil {
			return err
		}
		if err := ensureNameFree(ctx, r, name, 0); err != nil {
			return err
		}

		created, err := r.Products().Create(ctx, model.Product{
			Name:          name,
			Description:   strings.TrimSpace(in.Description),
			CategoryID:    in.CategoryID,
			Price:         in.Price.Round(2),
			StockQuantity: in.StockQuantity,
			ReorderLevel:  in.ReorderLevel,
			IsActive:      true,
		})
		if errors.Is(err, repo.ErrDuplicate) {
			return duplicateName(name)
		}
		if err != nil {
			return dbError(err)
		}

		if created.StockQuantity > 0 {
			if _, err := r.Inventory().CreateMovement(ctx, model.StockMovement{
				ProductID:     created.ID,
				MovementType:  model.MovementIn,
				Quantity:      created.StockQuantity,
				PreviousStock: 0,
				NewStock:      created.StockQuantity,
				Notes:         noteInitial,
			}); err != nil {
				return dbError(err)
			}
		}

		if err := writeAudit(ctx, r, model.AuditActionCreateProduct, model.AuditResourceProduct, created.ID, nil, created); err != nil {
			return err
		}

		view, err := r.Products().FindViewByID(ctx, created.ID)
		if err != nil {
			return dbError(err)
		}
		out = view
		return nil
	})
	if err != nil {
		return model.ProductView{}, err
	}
	return out, nil
}

// 在庫数は変更しない（add-stock / stock-out を使う）
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in UpdateProductInput) (model.ProductView, error) {
	if productID <= 0 {
		return model.ProductView{}, badRequest("invalid product id")
	}
	name := strings.TrimSpace(in.Name)
	if err := validateProductFields(name, in.CategoryID, in.Price, in.ReorderLevel); err != nil {
		return model.ProductView{}, err
	}

	var out model.ProductView
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) || (err == nil && !before.IsActive) {
			return notFound("product not found")
		}
		if err != nil {
			return dbError(err)
		}

		if err := ensureCategory(ctx, r, in.CategoryID); err != nil {
			return err
		}
		if err := ensureNameFree(ctx, r, name, productID); err != nil {
			return err
		}

		after := before
		after.Name = name
		after.Description = strings.TrimSpace(in.Description)
		after.CategoryID = in.CategoryID
		after.Price = in.Price.Round(2)
		after.ReorderLevel = in.ReorderLevel

		err = r.Products().Update(ctx, after)
		if errors.Is(err, repo.ErrDuplicate) {
			return duplicateName(name)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("product not found")
		}
		if err != nil {
			return dbError(err)
		}

		if err := writeAudit(ctx, r, model.AuditActionUpdateProduct, model.AuditResourceProduct, productID, before, after); err != nil {
			return err
		}

		view, err := r.Products().FindViewByID(ctx, productID)
		if err != nil {
			return dbError(err)
		}
		out = view
		return nil
	})
	if err != nil {
		return model.ProductView{}, err
	}
	return out, nil
}

// 論理削除。注文明細や在庫移動の履歴はそのまま残る
func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return badRequest("invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) || (err == nil && !before.IsActive) {
			return notFound("product not found")
		}
		if err != nil {
			return dbError(err)
		}

		err = r.Products().Deactivate(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("product not found")
		}
		if err != nil {
			return dbError(err)
		}

		after := before
		after.IsActive = false
		return writeAudit(ctx, r, model.AuditActionDeactivateProduct, model.AuditResourceProduct, productID, before, after)
	})
}

func ensureCategory(ctx context.Context, r repo.TxRepos, categoryID int64) error {
	_, err := r.Categories().FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return businessError(CodeInvalidCategory, "category not found", map[string]any{"category_id": categoryID})
	}
	if err != nil {
		return dbError(err)
	}
	return nil
}

func ensureNameFree(ctx context.Context, r repo.TxRepos, name string, excludeID int64) error {
	exists, err := r.Products().ExistsActiveName(ctx, name, excludeID)
	if err != nil {
		return dbError(err)
	}
	if exists {
		return duplicateName(name)
	}
	return nil
}

func duplicateName(name string) error {
	return businessError(CodeDuplicateName, "product name already exists", map[string]any{"name": name})
}

// 監査ログ。before/afterはJSONで残す
func writeAudit(ctx context.Context, r repo.TxRepos, action model.AuditAction, resource model.AuditResourceType, id int64, before, after any) error {
	log := model.AuditLog{
		Action:       action,
		ResourceType: resource,
		ResourceID:   id,
	}
	if before != nil {
		b, err := json.Marshal(before)
		if err != nil {
			return dbError(err)
		}
		log.BeforeJSON = string(b)
	}
	if after != nil {
		b, err := json.Marshal(after)
		if err != nil {
			return dbError(err)
		}
		log.AfterJSON = string(b)
	}
	if err := r.AuditLogs().Create(ctx, log); err != nil {
		return dbError(err)
	}
	return nil
}
