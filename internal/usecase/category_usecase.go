package usecase

import (
	"context"
	"errors"
	"strings"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"

	"github.com/labstack/gommon/log"
)

const maxCategoryNameLen = 100

type CategoryUsecase struct {
	tx         repo.TransactionManager
	categories repo.CategoryRepository
	cache      repo.CategoryCache
}

func NewCategoryUsecase(tx repo.TransactionManager, categories repo.CategoryRepository, cache repo.CategoryCache) *CategoryUsecase {
	return &CategoryUsecase{tx: tx, categories: categories, cache: cache}
}

// 名前順。キャッシュが使えなければDBを読む
func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, hit, err := u.cache.Get(ctx)
	if err != nil {
		log.Warnf("category cache get: %v", err)
	}
	if err == nil && hit {
		return items, nil
	}

	items, err = u.categories.List(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	if err := u.cache.Set(ctx, items); err != nil {
		log.Warnf("category cache set: %v", err)
	}
	return items, nil
}

type CreateCategoryInput struct {
	Name        string
	Description string
}

func (u *CategoryUsecase) Create(ctx context.Context, in CreateCategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, badRequest("name required")
	}
	if len(name) > maxCategoryNameLen {
		return model.Category{}, badRequest("name too long")
	}

	var out model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().Create(ctx, model.Category{
			Name:        name,
			Description: strings.TrimSpace(in.Description),
		})
		if errors.Is(err, repo.ErrDuplicate) {
			return businessError(CodeDuplicateName, "category name already exists", map[string]any{"name": name})
		}
		if err != nil {
			return dbError(err)
		}
		out = c
		return writeAudit(ctx, r, model.AuditActionCreateCategory, model.AuditResourceCategory, c.ID, nil, c)
	})
	if err != nil {
		return model.Category{}, err
	}

	// commit後に消す
	if err := u.cache.Invalidate(ctx); err != nil {
		log.Warnf("category cache invalidate: %v", err)
	}
	return out, nil
}
