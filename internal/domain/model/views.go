package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 以下は一覧・集計用の読み取りモデル（テーブルではない）

// 商品＋カテゴリ名
type ProductView struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	ReorderLevel  int64           `json:"reorder_level"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

type LowStockProduct struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	CategoryName  string          `json:"category_name"`
	StockQuantity int64           `json:"stock_quantity"`
	ReorderLevel  int64           `json:"reorder_level"`
	Price         decimal.Decimal `json:"price"`
}

// 商品ごとの入出庫集計
type StockSummaryRow struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name"`
	StockQuantity int64           `json:"stock_quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
	Price         decimal.Decimal `json:"price"`
	TotalIn       int64           `json:"total_in"`
	TotalOut      int64           `json:"total_out"`
	TotalInValue  decimal.Decimal `json:"total_in_value"`
	TotalOutValue decimal.Decimal `json:"total_out_value"`
	NetStock      int64           `json:"net_stock"`
}

// 在庫移動履歴の1行
type StockMovementView struct {
	MovementID    int64        `json:"movement_id"`
	ProductID     int64        `json:"product_id"`
	ProductName   string       `json:"product_name"`
	CategoryName  string       `json:"category_name"`
	MovementType  MovementType `json:"movement_type"`
	Quantity      int64        `json:"quantity"`
	PreviousStock int64        `json:"previous_stock"`
	NewStock      int64        `json:"new_stock"`
	Notes         string       `json:"notes"`
	MovementDate  time.Time    `json:"movement_date"`
}

// 注文＋明細件数
type OrderSummary struct {
	OrderID      int64           `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       OrderStatus     `json:"status"`
	Notes        string          `json:"notes"`
	OrderDate    time.Time       `json:"order_date"`
	ItemCount    int64           `json:"item_count"`
}

type OrderItemDetail struct {
	OrderItemID  int64           `json:"order_item_id"`
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Description  string          `json:"description"`
	CategoryName string          `json:"category_name"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type RevenueSummary struct {
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	FirstOrderDate    *time.Time      `json:"first_order_date"`
	LastOrderDate     *time.Time      `json:"last_order_date"`
}

type DailyRevenue struct {
	OrderDay     string          `json:"order_day"`
	OrderCount   int64           `json:"order_count"`
	DailyRevenue decimal.Decimal `json:"daily_revenue"`
}

type TopProduct struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Price        decimal.Decimal `json:"price"`
}
