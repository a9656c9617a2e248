package repository

import (
	"context"
	"strings"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

const productViewColumns = `p.id, p.name, p.description, p.category_id, c.name AS category_name,
	p.price, p.stock_quantity, p.reorder_level, p.is_active, p.created_at`

func (r *ProductGormRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Select(productViewColumns).
		Joins("JOIN categories c ON c.id = p.category_id")
}

// 検索/カテゴリ/ソート付きで返す。デフォルトは有効な商品のみ
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.ProductView, error) {
	items := []model.ProductView{}

	tx := r.viewQuery(ctx)
	if !q.IncludeInactive {
		tx = tx.Where("p.is_active = ?", true)
	}

	// 名前・説明の部分一致（大文字小文字を区別しない）
	if s := strings.TrimSpace(q.Q); s != "" {
		like := containsPattern(strings.ToLower(s))
		tx = tx.Where(`(LOWER(p.name) LIKE ? ESCAPE '\' OR LOWER(p.description) LIKE ? ESCAPE '\')`, like, like)
	}
	if q.CategoryID != nil {
		tx = tx.Where("p.category_id = ?", *q.CategoryID)
	}

	switch q.Sort {
	case "newest":
		tx = tx.Order("p.created_at desc").Order("p.id desc")
	case "stock":
		tx = tx.Order("p.stock_quantity asc").Order("p.name asc")
	default:
		tx = tx.Order("p.name asc").Order("p.id asc")
	}

	if err := tx.Scan(&items).Error; err != nil {
		return []model.ProductView{}, err
	}
	return items, nil
}

// IDで商品を取得（無効な商品も返す）
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindViewByID(ctx context.Context, id int64) (model.ProductView, error) {
	var rows []model.ProductView
	if err := r.viewQuery(ctx).Where("p.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return model.ProductView{}, err
	}
	if len(rows) == 0 {
		return model.ProductView{}, repo.ErrNotFound
	}
	return rows[0], nil
}

func (r *ProductGormRepository) ExistsActiveName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = ? AND LOWER(name) = ?", true, strings.ToLower(strings.TrimSpace(name)))
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// 在庫がしきい値以下の有効な商品（少ない順）
func (r *ProductGormRepository) ListLowStock(ctx context.Context) ([]model.LowStockProduct, error) {
	items := []model.LowStockProduct{}
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.id, p.name, c.name AS category_name, p.stock_quantity, p.reorder_level, p.price").
		Joins("JOIN categories c ON c.id = p.category_id").
		Where("p.is_active = ? AND p.stock_quantity <= p.reorder_level", true).
		Order("p.stock_quantity asc").Order("p.name asc").
		Scan(&items).Error
	if err != nil {
		return []model.LowStockProduct{}, err
	}
	return items, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Product{}, repo.ErrDuplicate
		}
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新。在庫数は台帳経由でしか変えないのでここでは触らない
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":          p.Name,
		"description":   p.Description,
		"category_id":   p.CategoryID,
		"price":         p.Price,
		"reorder_level": p.ReorderLevel,
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return repo.ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 論理削除（is_active=false）
func (r *ProductGormRepository) Deactivate(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
