package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const ChangeTypeCancellation = "cancellation"

// InventoryLog records a stock movement for audit. Cancelling an order writes
// one entry per restored line inside the cancellation transaction.
type InventoryLog struct {
	ID              bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	ProductID       bson.ObjectID `json:"product" bson:"product"`
	OrderID         bson.ObjectID `json:"order" bson:"order"`
	ChangeType      string        `json:"changeType" bson:"changeType"`
	QuantityBefore  int           `json:"quantityBefore" bson:"quantityBefore"`
	QuantityAfter   int           `json:"quantityAfter" bson:"quantityAfter"`
	QuantityChanged int           `json:"quantityChanged" bson:"quantityChanged"`
	PerformedBy     bson.ObjectID `json:"performedBy" bson:"performedBy"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
}

// NewRestockLog builds the entry for a product whose stock went from before
// to before+qty.
func NewRestockLog(order *Order, productID bson.ObjectID, before, qty int, by bson.ObjectID) InventoryLog {
	return InventoryLog{
		ID:              bson.NewObjectID(),
		ProductID:       productID,
		OrderID:         order.ID,
		ChangeType:      ChangeTypeCancellation,
		QuantityBefore:  before,
		QuantityAfter:   before + qty,
		QuantityChanged: qty,
		PerformedBy:     by,
		CreatedAt:       time.Now(),
	}
}
