package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	defaultCustomer = "Walk-in customer"
	defaultSaleNote = "No notes"
	maxSaleLines    = 100
)

// orders.total_amount numeric(12,2) の上限
var maxOrderTotal = decimal.RequireFromString("9999999999.99")

type SaleUsecase struct {
	tx repo.TransactionManager
}

func NewSaleUsecase(tx repo.TransactionManager) *SaleUsecase {
	return &SaleUsecase{tx: tx}
}

type SaleLine struct {
	ProductID int64
	Quantity  int64
}

type SellInput struct {
	Items        []SaleLine
	CustomerName string
	Notes        string
}

type SoldItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	NewStock    int64           `json:"new_stock"`
}

type SellOutput struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []SoldItem      `json:"items"`
	Message     string          `json:"message"`
}

// 販売。注文・明細・出庫・在庫減算を1つのTxで行う。
// どれか1行でも在庫不足なら何も書かない
func (u *SaleUsecase) Sell(ctx context.Context, in SellInput) (SellOutput, error) {
	lines, err := normalizeSaleLines(in.Items)
	if err != nil {
		return SellOutput{}, err
	}

	customer := strings.TrimSpace(in.CustomerName)
	if len(customer) > maxNameLen {
		return SellOutput{}, badRequest("customer_name too long")
	}
	if customer == "" {
		customer = defaultCustomer
	}
	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLen {
		return SellOutput{}, badRequest("notes too long")
	}
	if notes == "" {
		notes = defaultSaleNote
	}

	var out SellOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 先に全行ロック＋チェック（書き込み前に失敗させる）
		products := make([]model.Product, len(lines))
		total := decimal.Zero
		for i, l := range lines {
			p, err := r.Inventory().FindForUpdate(ctx, l.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return notFound(fmt.Sprintf("product %d not found", l.ProductID))
			}
			if err != nil {
				return dbError(err)
			}
			if !p.IsActive {
				return businessError(CodeProductInactive, "product is inactive", map[string]any{"product_id": p.ID})
			}
			if p.StockQuantity < l.Quantity {
				return insufficientStock(p.ID, p.Name, p.StockQuantity, l.Quantity)
			}
			products[i] = p
			total = total.Add(p.Price.Mul(decimal.NewFromInt(l.Quantity)))
		}
		if total.GreaterThan(maxOrderTotal) {
			return badRequest("order total too large")
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerName: customer,
			TotalAmount:  total,
			Status:       model.OrderStatusCompleted,
			Notes:        notes,
		})
		if err != nil {
			return dbError(err)
		}

		items := make([]model.OrderItem, len(lines))
		for i, l := range lines {
			items[i] = model.OrderItem{
				ProductID:           l.ProductID,
				ProductNameSnapshot: products[i].Name,
				Quantity:            l.Quantity,
				UnitPrice:           products[i].Price,
			}
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return dbError(err)
		}

		moveNote := fmt.Sprintf("Sold to: %s - %s", customer, notes)
		sold := make([]SoldItem, len(lines))
		for i, l := range lines {
			p := products[i]
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, l.Quantity)
			if err != nil {
				return dbError(err)
			}
			if !ok {
				return insufficientStock(p.ID, p.Name, p.StockQuantity, l.Quantity)
			}

			next := p.StockQuantity - l.Quantity
			if _, err := r.Inventory().CreateMovement(ctx, model.StockMovement{
				ProductID:     p.ID,
				MovementType:  model.MovementOut,
				Quantity:      l.Quantity,
				PreviousStock: p.StockQuantity,
				NewStock:      next,
				Notes:         moveNote,
			}); err != nil {
				return dbError(err)
			}

			sold[i] = SoldItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitPrice:   p.Price,
				Subtotal:    items[i].Subtotal(),
				NewStock:    next,
			}
		}

		out = SellOutput{
			OrderID:     orderID,
			TotalAmount: total,
			Items:       sold,
			Message:     fmt.Sprintf("Order %d completed", orderID),
		}
		return nil
	})
	if err != nil {
		return SellOutput{}, err
	}
	return out, nil
}

// 入力チェックと同一商品の行をまとめる（順序は最初に出た順）
func normalizeSaleLines(items []SaleLine) ([]SaleLine, error) {
	if len(items) == 0 {
		return nil, badRequest("items required")
	}
	if len(items) > maxSaleLines {
		return nil, badRequest("too many items")
	}

	index := make(map[int64]int, len(items))
	out := make([]SaleLine, 0, len(items))
	for _, it := range items {
		if it.ProductID <= 0 {
			return nil, badRequest("product_id required")
		}
		if it.Quantity <= 0 {
			return nil, badRequest("quantity must be > 0")
		}
		if it.Quantity > maxStockQuantity {
			return nil, badRequest(fmt.Sprintf("quantity must be <= %d", maxStockQuantity))
		}
		if i, ok := index[it.ProductID]; ok {
			// まとめた数量も上限以下
			if it.Quantity > maxStockQuantity-out[i].Quantity {
				return nil, badRequest(fmt.Sprintf("total quantity for product %d must be <= %d", it.ProductID, maxStockQuantity))
			}
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out, nil
}
