package payment

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidPayment = errors.New("payment references no cart items")

// CartSweeper is the slice of the cart ledger checkout needs: owner-scoped,
// idempotent bulk delete by id.
type CartSweeper interface {
	RemoveOwned(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error)
}

// Checkout reconciles a completed payment with the cart it paid for.
type Checkout struct {
	payments Repository
	carts    CartSweeper
}

func NewCheckout(payments Repository, carts CartSweeper) *Checkout {
	return &Checkout{payments: payments, carts: carts}
}

// Result reports what checkout actually did. Requested and Deleted can
// differ when cart cleanup fell short; the payment itself is final either way.
type Result struct {
	PaymentID  string `json:"paymentId"`
	Requested  int    `json:"requested"`
	Deleted    int64  `json:"deleted"`
	CleanupErr string `json:"cleanupError,omitempty"`
}

// Finalize is a two-phase write with documented non-atomicity. The payment
// record is persisted first and never rolled back: an under-deleted cart is
// recoverable by a later sweep, an unrecorded charge is not. Cart deletion is
// owner-scoped, so ids that belong to someone else are silently skipped and
// an already-deleted id is a no-op rather than an error.
func (c *Checkout) Finalize(ctx context.Context, p *Payment) (*Result, error) {
	if len(p.CartItemIDs) == 0 {
		return nil, ErrInvalidPayment
	}

	if err := c.payments.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("persist payment: %w", err)
	}

	res := &Result{
		PaymentID: p.ID.Hex(),
		Requested: len(p.CartItemIDs),
	}
	deleted, err := c.carts.RemoveOwned(ctx, p.CartItemIDs, p.Email)
	res.Deleted = deleted
	if err != nil {
		res.CleanupErr = err.Error()
	}
	return res, nil
}
