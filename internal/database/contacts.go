package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type ContactStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewContactStore(db *mongo.Database, timeout time.Duration) *ContactStore {
	return &ContactStore{coll: db.Collection(ContactsCollection), timeout: timeout}
}

// Insert stores contact and returns it with the ID the store assigned.
func (s *ContactStore) Insert(ctx context.Context, contact models.Contact) (models.Contact, error) {
	id, err := insertOne(ctx, s.coll, s.timeout, "insert_contact", contact)
	if err != nil {
		return models.Contact{}, err
	}
	contact.ID = id
	return contact, nil
}

// ListRecent returns up to limit contacts, most recently submitted first.
func (s *ContactStore) ListRecent(ctx context.Context, limit int64) ([]models.Contact, error) {
	return findRecent[models.Contact](ctx, s.coll, s.timeout, "list_contacts", "submittedAt", limit)
}
