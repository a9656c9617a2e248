package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// 販売で作られるのはCOMPLETEDのみ
const (
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

type Order struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime;index" json:"order_date"`
}
