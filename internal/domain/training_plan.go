package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Level is the difficulty tier of a training plan.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// TrainingPlan is a priced program template. Contracts reference it; the
// plan itself has an independent lifecycle and may be edited or deleted
// freely.
type TrainingPlan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	DurationDays   int                `bson:"durationDays" json:"durationDays"`
	Goals          string             `bson:"goals" json:"goals"`
	Level          Level              `bson:"level" json:"level"`
	SuggestedPrice float64            `bson:"suggestedPrice" json:"suggestedPrice"`
}

// NewTrainingPlan validates and builds a plan record.
func NewTrainingPlan(name string, durationDays int, goals string, level Level, suggestedPrice float64) (*TrainingPlan, error) {
	var bad []string
	name = strings.TrimSpace(name)
	if name == "" {
		bad = append(bad, "name")
	}
	if durationDays < 1 {
		bad = append(bad, "durationDays")
	}
	if strings.TrimSpace(goals) == "" {
		bad = append(bad, "goals")
	}
	if !level.Valid() {
		bad = append(bad, "level")
	}
	if suggestedPrice < 0 {
		bad = append(bad, "suggestedPrice")
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}
	return &TrainingPlan{
		Name:           name,
		DurationDays:   durationDays,
		Goals:          strings.TrimSpace(goals),
		Level:          level,
		SuggestedPrice: suggestedPrice,
	}, nil
}

// TrainingPlanUpdate carries optional replacement values for a plan edit.
type TrainingPlanUpdate struct {
	Name           *string
	DurationDays   *int
	Goals          *string
	Level          *Level
	SuggestedPrice *float64
}

func (u TrainingPlanUpdate) IsEmpty() bool {
	return u.Name == nil && u.DurationDays == nil && u.Goals == nil &&
		u.Level == nil && u.SuggestedPrice == nil
}

// MergeTrainingPlan overlays an update on an existing plan. Requires at
// least one changed field.
func MergeTrainingPlan(existing *TrainingPlan, update TrainingPlanUpdate) (*TrainingPlan, error) {
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
	if update.DurationDays != nil {
		if *update.DurationDays < 1 {
			bad = append(bad, "durationDays")
		}
		merged.DurationDays = *update.DurationDays
	}
	if update.Goals != nil {
		merged.Goals = strings.TrimSpace(*update.Goals)
	}
	if update.Level != nil {
		if !update.Level.Valid() {
			bad = append(bad, "level")
		}
		merged.Level = *update.Level
	}
	if update.SuggestedPrice != nil {
		if *update.SuggestedPrice < 0 {
			bad = append(bad, "suggestedPrice")
		}
		merged.SuggestedPrice = *update.SuggestedPrice
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}
	return &merged, nil
}
