package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type OrderStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewOrderStore(db *mongo.Database, timeout time.Duration) *OrderStore {
	return &OrderStore{coll: db.Collection(OrdersCollection), timeout: timeout}
}

func (s *OrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	id, err := insertOne(ctx, s.coll, s.timeout, "insert_order", order)
	if err != nil {
		return models.Order{}, err
	}
	order.ID = id
	return order, nil
}

func (s *OrderStore) ListRecent(ctx context.Context, limit int64) ([]models.Order, error) {
	return findRecent[models.Order](ctx, s.coll, s.timeout, "list_orders", "createdAt", limit)
}
