package repository

import (
	"context"

	"gorm.io/gorm"
)

type SystemGormRepository struct {
	db *gorm.DB
}

func NewSystemGormRepository(db *gorm.DB) *SystemGormRepository {
	return &SystemGormRepository{db: db}
}

// DBのバージョン文字列（疎通確認）
func (r *SystemGormRepository) Version(ctx context.Context) (string, error) {
	query := "SELECT version()"
	if r.db.Dialector.Name() == "sqlite" {
		query = "SELECT 'SQLite ' || sqlite_version()"
	}

	var v string
	if err := r.db.WithContext(ctx).Raw(query).Scan(&v).Error; err != nil {
		return "", err
	}
	return v, nil
}
