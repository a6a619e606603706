package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a contact-form submission.
type Contact struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Message     string             `bson:"message" json:"message"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
}

// NewContact stamps the submission with now(); clients cannot set SubmittedAt.
func NewContact(name, email, message string, now func() time.Time) Contact {
	return Contact{
		Name:        name,
		Email:       email,
		Message:     message,
		SubmittedAt: now().UTC(),
	}
}
