package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the durable evidence of a charge. It is written exactly once
// per successful checkout and never mutated.
type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Email         string               `bson:"email" json:"email"`
	Amount        int64                `bson:"amount" json:"amount"` // minor units
	Currency      string               `bson:"currency" json:"currency"`
	CartItemIDs   []primitive.ObjectID `bson:"cartItemIds" json:"cartItemIds"`
	TransactionID string               `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}

// MinorUnits converts a price in decimal currency units to provider minor
// units (cents). Going through decimal keeps 42.50 at exactly 4250.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
