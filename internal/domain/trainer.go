package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer is a coach that can optionally be attached to a contract.
type Trainer struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

func NewTrainer(name string) (*Trainer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name")
	}
	return &Trainer{Name: name}, nil
}
