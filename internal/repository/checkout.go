package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

var ErrStockRowMissing = errors.New("catalog stock row not found")

// StockGuard runs before each decrement, inside the checkout transaction.
// Returning an error aborts the whole checkout. The default policy has no
// guard: the ledger clamps at zero and overselling is left to fulfillment.
type StockGuard func(ctx context.Context, q DBTX, line *domain.OrderLine) error

type CheckoutPolicy struct {
	// RequireStockRow makes a decrement that matches no catalog row fatal
	// to the checkout instead of a silent no-op.
	RequireStockRow bool
	PreCheck        StockGuard
}

func DefaultCheckoutPolicy() CheckoutPolicy {
	return CheckoutPolicy{RequireStockRow: true}
}

// PlaceOrder persists a checkout as one atomic unit of work: the order
// header, every order line, the migration of each line's pre-checkout
// transport allocations, the stock decrements, the cart deletion and the
// outbox event either all commit or none of them do.
//
// Lines are processed sequentially in list order. They are independent, so
// ordering does not affect correctness, but keeping it deterministic makes
// failures reproducible.
func (r *Repository) PlaceOrder(ctx context.Context, order *domain.Order) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin checkout tx: %w", err)
	}
	defer tx.Rollback()

	orderID, err := r.InsertOrder(ctx, tx, order)
	if err != nil {
		return 0, err
	}

	for i := range order.Lines {
		line := &order.Lines[i]

		lineID, errLine := r.InsertOrderLine(ctx, tx, orderID, line)
		if errLine != nil {
			return 0, errLine
		}
		line.ID = lineID
		line.OrderID = orderID

		if _, errMig := r.MigrateAllocations(ctx, tx, line.CartLineIDs, lineID); errMig != nil {
			return 0, errMig
		}

		if r.policy.PreCheck != nil {
			if errGuard := r.policy.PreCheck(ctx, tx, line); errGuard != nil {
				return 0, errGuard
			}
		}

		res, errDec := r.DecrementStock(ctx, tx, line.Kind, line.ProductID, line.Quantity)
		if errDec != nil {
			return 0, errDec
		}
		if res == StockNotFound {
			if r.policy.RequireStockRow {
				return 0, fmt.Errorf("%w: %s id=%d", ErrStockRowMissing, line.Kind, line.ProductID)
			}
			log.Printf("no %s stock row for product %d, decrement skipped", line.Kind, line.ProductID)
		}
	}

	if err := r.ClearCart(ctx, tx, order.BuyerID); err != nil {
		return 0, err
	}

	if err := r.insertOrderPlacedEvent(ctx, tx, orderID, order); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit checkout tx: %w", err)
	}
	return orderID, nil
}
