package cart

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is one pending order line. Duplicate menu items in a cart are
// legitimate, so there is no dedup key beyond the id.
type Item struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	MenuID    string             `bson:"menuId" json:"menuId"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
