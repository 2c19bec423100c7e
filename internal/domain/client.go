package domain

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patterns mirror the collection-level schema validators so bad input is
// rejected before a write is attempted.
var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Client is a gym member. Deactivating a client (Active=false) cascades to
// their active contracts; see service.ClientService.
type Client struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	RegisteredAt time.Time          `bson:"registeredAt" json:"registeredAt"`
	Active       bool               `bson:"active" json:"active"`
}

// NewClient builds a ready-to-persist client record. New clients are always
// active.
func NewClient(name, email, phone string) (*Client, error) {
	var bad []string
	name = strings.TrimSpace(name)
	if name == "" {
		bad = append(bad, "name")
	}
	if !emailPattern.MatchString(email) {
		bad = append(bad, "email")
	}
	if !phonePattern.MatchString(phone) {
		bad = append(bad, "phone")
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}
	return &Client{
		Name:         name,
		Email:        strings.ToLower(email),
		Phone:        phone,
		RegisteredAt: time.Now().UTC(),
		Active:       true,
	}, nil
}

// ClientUpdate carries the fields a client edit may change. Nil pointers
// leave the existing value untouched.
type ClientUpdate struct {
	Name   *string
	Email  *string
	Phone  *string
	Active *bool
}

// IsEmpty reports whether the update would change nothing.
func (u ClientUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Active == nil
}

// MergeClient overlays an update on an existing client, validating any
// replaced field. RegisteredAt and ID are never touched.
func MergeClient(existing *Client, update ClientUpdate) (*Client, error) {
	if existing == nil || update.IsEmpty() {
		return nil, newValidationError("update")
	}
	merged := *existing
	var bad []string
	if update.Name != nil {
		merged.Name = strings.TrimSpace(*update.Name)
		if merged.Name == "" {
			bad = append(bad, "name")
		}
	}
	if update.Email != nil {
		if !emailPattern.MatchString(*update.Email) {
			bad = append(bad, "email")
		}
		merged.Email = strings.ToLower(*update.Email)
	}
	if update.Phone != nil {
		if !phonePattern.MatchString(*update.Phone) {
			bad = append(bad, "phone")
		}
		merged.Phone = *update.Phone
	}
	if update.Active != nil {
		merged.Active = *update.Active
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}
	return &merged, nil
}
