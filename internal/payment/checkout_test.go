package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubPayments struct {
	inserted  []*Payment
	insertErr error
}

func (s *stubPayments) Insert(ctx context.Context, p *Payment) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.inserted = append(s.inserted, p)
	return nil
}

// stubCarts only implements the bulk delete used by checkout; failIDs
// simulates a store fault on specific ids.
type stubCarts struct {
	owners    map[primitive.ObjectID]string
	failIDs   map[primitive.ObjectID]bool
	removeErr error
}

func (s *stubCarts) RemoveOwned(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error) {
	var deleted int64
	var err error
	for _, id := range ids {
		if s.failIDs[id] {
			err = errors.New("simulated store fault")
			continue
		}
		if owner, ok := s.owners[id]; ok && owner == email {
			delete(s.owners, id)
			deleted++
		}
	}
	if s.removeErr != nil {
		err = s.removeErr
	}
	return deleted, err
}

func TestFinalize_EmptyCart(t *testing.T) {
	t.Parallel()

	payments := &stubPayments{}
	co := NewCheckout(payments, &stubCarts{})

	_, err := co.Finalize(context.Background(), &Payment{Email: "u@example.com"})
	if !errors.Is(err, ErrInvalidPayment) {
		t.Fatalf("err=%v, expected ErrInvalidPayment", err)
	}
	if len(payments.inserted) != 0 {
		t.Fatal("payment persisted for empty cart")
	}
}

func TestFinalize_PaymentBeforeDeletion(t *testing.T) {
	t.Parallel()

	c1, c2 := primitive.NewObjectID(), primitive.NewObjectID()
	carts := &stubCarts{owners: map[primitive.ObjectID]string{
		c1: "u@example.com",
		c2: "u@example.com",
	}}
	payments := &stubPayments{insertErr: errors.New("store down")}
	co := NewCheckout(payments, carts)

	_, err := co.Finalize(context.Background(), &Payment{
		Email:       "u@example.com",
		CartItemIDs: []primitive.ObjectID{c1, c2},
	})
	if err == nil {
		t.Fatal("expected error when payment write fails")
	}
	// cart must be untouched when the payment never landed
	if len(carts.owners) != 2 {
		t.Fatalf("cart mutated before payment persisted: %d items left", len(carts.owners))
	}
}

func TestFinalize_HappyPath(t *testing.T) {
	t.Parallel()

	c1, c2 := primitive.NewObjectID(), primitive.NewObjectID()
	carts := &stubCarts{owners: map[primitive.ObjectID]string{
		c1: "u@example.com",
		c2: "u@example.com",
	}}
	payments := &stubPayments{}
	co := NewCheckout(payments, carts)

	res, err := co.Finalize(context.Background(), &Payment{
		Email:       "u@example.com",
		Amount:      4250,
		CartItemIDs: []primitive.ObjectID{c1, c2},
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if res.Requested != 2 || res.Deleted != 2 || res.CleanupErr != "" {
		t.Fatalf("result=%+v", res)
	}
	if len(payments.inserted) != 1 || payments.inserted[0].Amount != 4250 {
		t.Fatalf("payments=%+v", payments.inserted)
	}
	if len(carts.owners) != 0 {
		t.Fatalf("%d cart items survived checkout", len(carts.owners))
	}
}

func TestFinalize_PartialDeletionKeepsPayment(t *testing.T) {
	t.Parallel()

	c1, c2 := primitive.NewObjectID(), primitive.NewObjectID()
	carts := &stubCarts{
		owners: map[primitive.ObjectID]string{
			c1: "u@example.com",
			c2: "u@example.com",
		},
		failIDs: map[primitive.ObjectID]bool{c2: true},
	}
	payments := &stubPayments{}
	co := NewCheckout(payments, carts)

	res, err := co.Finalize(context.Background(), &Payment{
		Email:       "u@example.com",
		CartItemIDs: []primitive.ObjectID{c1, c2},
	})
	if err != nil {
		t.Fatalf("partial deletion must not fail the call: %v", err)
	}
	if len(payments.inserted) != 1 {
		t.Fatal("payment record lost on partial deletion")
	}
	if res.Requested != 2 || res.Deleted != 1 || res.CleanupErr == "" {
		t.Fatalf("result=%+v, expected mismatch to be reported", res)
	}
	if _, ok := carts.owners[c2]; !ok {
		t.Fatal("c2 should have survived the simulated fault")
	}
	if _, ok := carts.owners[c1]; ok {
		t.Fatal("c1 should have been deleted")
	}
}

func TestFinalize_ForeignItemsNotDeleted(t *testing.T) {
	t.Parallel()

	mine, theirs := primitive.NewObjectID(), primitive.NewObjectID()
	carts := &stubCarts{owners: map[primitive.ObjectID]string{
		mine:   "a@example.com",
		theirs: "b@example.com",
	}}
	payments := &stubPayments{}
	co := NewCheckout(payments, carts)

	res, err := co.Finalize(context.Background(), &Payment{
		Email:       "a@example.com",
		CartItemIDs: []primitive.ObjectID{mine, theirs},
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if res.Deleted != 1 {
		t.Fatalf("deleted=%d, expected owner-scoped delete to skip foreign item", res.Deleted)
	}
	if _, ok := carts.owners[theirs]; !ok {
		t.Fatal("foreign item deleted")
	}
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		price string
		want  int64
	}{
		{"42.50", 4250},
		{"0.1", 10},
		{"19.99", 1999},
		{"100", 10000},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.price)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.price, err)
		}
		if got := MinorUnits(d); got != tc.want {
			t.Fatalf("MinorUnits(%s)=%d, expected %d", tc.price, got, tc.want)
		}
	}
}
