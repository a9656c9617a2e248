package repository

import (
	"context"

	"inventory/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
}

// カテゴリ一覧のキャッシュ。取れなければDBを読む
type CategoryCache interface {
	Get(ctx context.Context) ([]model.Category, bool, error)
	Set(ctx context.Context, categories []model.Category) error
	Invalidate(ctx context.Context) error
}
