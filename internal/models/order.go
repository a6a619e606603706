package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusReceived is the only status an order is ever given.
const OrderStatusReceived = "received"

// OrderItem is a single line of an order, kept exactly as the client sent it.
// Quantity and Price are raw JSON values; pricing.OrderTotal decides how they
// count towards the total.
type OrderItem struct {
	Name     string   `bson:"name" json:"name"`
	Quantity RawValue `bson:"quantity,omitempty" json:"quantity,omitzero"`
	Price    RawValue `bson:"price,omitempty" json:"price,omitzero"`
}

// Order defines the persisted order document.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Status    string             `bson:"status" json:"status"`
}

// NewOrder builds a received order stamped with now(). The total is computed
// by the caller and never changes afterwards.
func NewOrder(name, email, phone string, items []OrderItem, total float64, now func() time.Time) Order {
	return Order{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Items:     items,
		Total:     total,
		CreatedAt: now().UTC(),
		Status:    OrderStatusReceived,
	}
}
