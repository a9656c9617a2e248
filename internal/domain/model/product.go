package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品。削除はis_activeを落とすだけ（物理削除しない）
type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_products_active_name,where:is_active = true" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	CategoryID    int64           `gorm:"not null;index" json:"category_id"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	StockQuantity int64           `gorm:"not null;default:0" json:"stock_quantity"`
	ReorderLevel  int64           `gorm:"not null;default:0" json:"reorder_level"`
	IsActive      bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 在庫がしきい値以下か
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}
