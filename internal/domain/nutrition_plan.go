package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealType identifies a meal slot. Each type is usable at most once per
// nutrition plan.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// AllMealTypes lists the slots in menu order.
var AllMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// Meal is one entry of a nutrition plan. EstimatedCalories is optional.
type Meal struct {
	Type              MealType `bson:"type" json:"type"`
	Description       string   `bson:"description" json:"description"`
	EstimatedCalories *int     `bson:"estimatedCalories,omitempty" json:"estimatedCalories,omitempty"`
}

// NutritionPlan is a dated meal prescription attached to a contract. One
// plan per contract per calendar day by convention (not enforced by a
// uniqueness constraint).
type NutritionPlan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContractID   primitive.ObjectID `bson:"contractId" json:"contractId"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Meals        []Meal             `bson:"meals" json:"meals"`
	RegisteredAt time.Time          `bson:"registeredAt" json:"registeredAt"`
}

// NewNutritionPlan validates and builds a plan. Requires at least one meal
// and no duplicated meal types.
func NewNutritionPlan(contractID primitive.ObjectID, name, description string, meals []Meal) (*NutritionPlan, error) {
	var bad []string
	if contractID.IsZero() {
		bad = append(bad, "contractId")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		bad = append(bad, "name")
	}
	if len(meals) == 0 {
		bad = append(bad, "meals")
	}
	seen := make(map[MealType]bool, len(meals))
	for _, m := range meals {
		if !m.Type.Valid() || seen[m.Type] || strings.TrimSpace(m.Description) == "" ||
			(m.EstimatedCalories != nil && *m.EstimatedCalories < 0) {
			bad = append(bad, "meals")
			break
		}
		seen[m.Type] = true
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}
	return &NutritionPlan{
		ContractID:   contractID,
		Name:         name,
		Description:  strings.TrimSpace(description),
		Meals:        meals,
		RegisteredAt: time.Now().UTC(),
	}, nil
}

// MealBuilder accumulates meals for a plan under construction. It is a
// small state machine decoupled from input sourcing: Remaining offers the
// not-yet-used types, Add consumes one, Meals returns the selection.
type MealBuilder struct {
	meals []Meal
	used  map[MealType]bool
}

func NewMealBuilder() *MealBuilder {
	return &MealBuilder{used: make(map[MealType]bool, len(AllMealTypes))}
}

// Remaining returns the meal types still available, in menu order. Empty
// means the selection is complete.
func (b *MealBuilder) Remaining() []MealType {
	var out []MealType
	for _, t := range AllMealTypes {
		if !b.used[t] {
			out = append(out, t)
		}
	}
	return out
}

// Add records a meal of a not-yet-used type. estimatedCalories may be nil.
func (b *MealBuilder) Add(t MealType, description string, estimatedCalories *int) error {
	if !t.Valid() {
		return newValidationError("type")
	}
	if b.used[t] {
		return fmt.Errorf("meal type %q already added", t)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return newValidationError("description")
	}
	if estimatedCalories != nil && *estimatedCalories < 0 {
		return newValidationError("estimatedCalories")
	}
	b.used[t] = true
	b.meals = append(b.meals, Meal{Type: t, Description: description, EstimatedCalories: estimatedCalories})
	return nil
}

// Len reports how many meals have been added.
func (b *MealBuilder) Len() int { return len(b.meals) }

// Meals returns the accumulated selection in insertion order.
func (b *MealBuilder) Meals() []Meal {
	return append([]Meal(nil), b.meals...)
}
