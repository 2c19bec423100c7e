package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressStatus marks whether a measurement still counts. Cancellation is
// a soft state change; hard deletion is also supported at the repository.
type ProgressStatus string

const (
	ProgressValid     ProgressStatus = "valid"
	ProgressCancelled ProgressStatus = "cancelled"
)

// Measurements are optional body measurements in centimeters. A nil field
// was not measured.
type Measurements struct {
	Chest *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Arm   *float64 `bson:"arm,omitempty" json:"arm,omitempty"`
	Waist *float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Leg   *float64 `bson:"leg,omitempty" json:"leg,omitempty"`
}

// ProgressRecord is one dated physical check-in under a contract.
type ProgressRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContractID   primitive.ObjectID `bson:"contractId" json:"contractId"`
	Date         time.Time          `bson:"date" json:"date"`
	WeightKg     float64            `bson:"weightKg" json:"weightKg"`
	BodyFatPct   *float64           `bson:"bodyFatPct,omitempty" json:"bodyFatPct,omitempty"`
	Measurements *Measurements      `bson:"measurements,omitempty" json:"measurements,omitempty"`
	PhotoURLs    []string           `bson:"photoUrls,omitempty" json:"photoUrls,omitempty"`
	Comments     string             `bson:"comments,omitempty" json:"comments,omitempty"`
	Status       ProgressStatus     `bson:"status" json:"status"`
}

// ProgressSpec is the raw input for NewProgressRecord.
type ProgressSpec struct {
	ContractID   primitive.ObjectID
	WeightKg     float64
	BodyFatPct   *float64
	Measurements *Measurements
	PhotoURLs    []string
	Comments     string
}

// NewProgressRecord validates and builds a check-in dated now, status
// valid.
func NewProgressRecord(spec ProgressSpec) (*ProgressRecord, error) {
	var bad []string
	if spec.ContractID.IsZero() {
		bad = append(bad, "contractId")
	}
	if spec.WeightKg <= 0 {
		bad = append(bad, "weightKg")
	}
	if spec.BodyFatPct != nil && *spec.BodyFatPct < 0 {
		bad = append(bad, "bodyFatPct")
	}
	if m := spec.Measurements; m != nil {
		for _, v := range []*float64{m.Chest, m.Arm, m.Waist, m.Leg} {
			if v != nil && *v < 0 {
				bad = append(bad, "measurements")
				break
			}
		}
	}
	var photos []string
	for _, u := range spec.PhotoURLs {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			bad = append(bad, "photoUrls")
			break
		}
		photos = append(photos, u)
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}
	return &ProgressRecord{
		ContractID:   spec.ContractID,
		Date:         time.Now().UTC(),
		WeightKg:     spec.WeightKg,
		BodyFatPct:   spec.BodyFatPct,
		Measurements: spec.Measurements,
		PhotoURLs:    photos,
		Comments:     strings.TrimSpace(spec.Comments),
		Status:       ProgressValid,
	}, nil
}
