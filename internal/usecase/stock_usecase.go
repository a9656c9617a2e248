package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

// 1商品あたりの在庫・数量の上限
const maxStockQuantity int64 = 1_000_000_000

const (
	maxNotesLen  = 500
	noteStockIn  = "Manual stock addition"
	noteStockOut = "Manual stock reduction"
)

type StockUsecase struct {
	tx repo.TransactionManager
}

func NewStockUsecase(tx repo.TransactionManager) *StockUsecase {
	return &StockUsecase{tx: tx}
}

type StockChangeInput struct {
	Quantity int64
	Notes    string
}

type StockChangeOutput struct {
	ProductID     int64  `json:"product_id"`
	PreviousStock int64  `json:"previous_stock"`
	NewStock      int64  `json:"new_stock"`
	Quantity      int64  `json:"quantity"`
	MovementID    int64  `json:"movement_id"`
	Message       string `json:"message"`
}

// 入庫
func (u *StockUsecase) AddStock(ctx context.Context, productID int64, in StockChangeInput) (StockChangeOutput, error) {
	return u.applyStockChange(ctx, productID, model.MovementIn, in)
}

// 手動出庫。在庫が足りなければ何も変えずにエラー
func (u *StockUsecase) StockOut(ctx context.Context, productID int64, in StockChangeInput) (StockChangeOutput, error) {
	return u.applyStockChange(ctx, productID, model.MovementOut, in)
}

func (u *StockUsecase) applyStockChange(ctx context.Context, productID int64, typ model.MovementType, in StockChangeInput) (StockChangeOutput, error) {
	if productID <= 0 {
		return StockChangeOutput{}, badRequest("invalid product id")
	}
	if in.Quantity <= 0 {
		return StockChangeOutput{}, badRequest("quantity must be > 0")
	}
	if in.Quantity > maxStockQuantity {
		return StockChangeOutput{}, badRequest(fmt.Sprintf("quantity must be <= %d", maxStockQuantity))
	}
	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLen {
		return StockChangeOutput{}, badRequest("notes too long")
	}
	if notes == "" {
		notes = noteStockIn
		if typ == model.MovementOut {
			notes = noteStockOut
		}
	}

	var out StockChangeOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 行ロックしてから読む（同時の入出庫で数がずれないように）
		p, err := r.Inventory().FindForUpdate(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("product not found")
		}
		if err != nil {
			return dbError(err)
		}
		if !p.IsActive {
			return businessError(CodeProductInactive, "product is inactive", map[string]any{"product_id": productID})
		}

		prev := p.StockQuantity
		next := prev + in.Quantity
		if typ == model.MovementIn && in.Quantity > maxStockQuantity-prev {
			return NewValidationError(
				fmt.Sprintf("stock would exceed %d", maxStockQuantity),
				map[string]any{"current_stock": prev, "requested": in.Quantity},
			)
		}
		if typ == model.MovementOut {
			if prev < in.Quantity {
				return insufficientStock(p.ID, p.Name, prev, in.Quantity)
			}
			next = prev - in.Quantity

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, productID, in.Quantity)
			if err != nil {
				return dbError(err)
			}
			if !ok {
				return insufficientStock(p.ID, p.Name, prev, in.Quantity)
			}
		} else {
			if err := r.Inventory().IncreaseStock(ctx, productID, in.Quantity); err != nil {
				return dbError(err)
			}
		}

		m, err := r.Inventory().CreateMovement(ctx, model.StockMovement{
			ProductID:     productID,
			MovementType:  typ,
			Quantity:      in.Quantity,
			PreviousStock: prev,
			NewStock:      next,
			Notes:         notes,
		})
		if err != nil {
			return dbError(err)
		}

		out = StockChangeOutput{
			ProductID:     productID,
			PreviousStock: prev,
			NewStock:      next,
			Quantity:      in.Quantity,
			MovementID:    m.ID,
			Message:       stockMessage(typ, in.Quantity, p.Name),
		}
		return nil
	})
	if err != nil {
		return StockChangeOutput{}, err
	}
	return out, nil
}

func stockMessage(typ model.MovementType, qty int64, name string) string {
	if typ == model.MovementOut {
		return fmt.Sprintf("Removed %d units from %s", qty, name)
	}
	return fmt.Sprintf("Added %d units to %s", qty, name)
}
