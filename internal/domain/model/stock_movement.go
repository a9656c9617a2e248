package model

import "time"

type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// 在庫移動の台帳。追記のみで更新・削除はしない
type StockMovement struct {
	ID            int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     int64        `gorm:"not null;index" json:"product_id"`
	MovementType  MovementType `gorm:"type:varchar(10);not null;index" json:"movement_type"`
	Quantity      int64        `gorm:"not null" json:"quantity"`
	PreviousStock int64        `gorm:"not null" json:"previous_stock"`
	NewStock      int64        `gorm:"not null" json:"new_stock"`
	Notes         string       `gorm:"type:varchar(500)" json:"notes"`
	CreatedAt     time.Time    `gorm:"not null;autoCreateTime;index" json:"movement_date"`
}
