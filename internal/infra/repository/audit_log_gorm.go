package repository

import (
	"context"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"

	"gorm.io/gorm"
)

// 商品・カテゴリ変更の監査ログ
type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// 呼び出し側のTxに乗せる（Tx用のdbで作ったrepoを使う）
func (r *AuditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

// 新しい順。対象（種別＋ID）と操作、期間で絞れる
func (r *AuditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs := []model.AuditLog{}
	err := r.db.WithContext(ctx).
		Scopes(
			whereEq("resource_type", f.ResourceType),
			whereEq("resource_id", f.ResourceID),
			whereEq("action", f.Action),
			between("created_at", f.CreatedFrom, f.CreatedTo),
			paginate(f.Limit, f.Offset),
		).
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
