package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContractStatus is the lifecycle state of a contract.
//
// Valid transitions:
//
//	active    -> cancelled   (operator cancellation, or client deactivation cascade)
//	active    -> finalized   (end date passed)
//	active    -> renewed     (a successor contract was opened)
//	finalized -> renewed
//
// cancelled and renewed are terminal; a renewal always creates a new
// contract instead of mutating the old one further.
type ContractStatus string

const (
	ContractActive    ContractStatus = "active"
	ContractCancelled ContractStatus = "cancelled"
	ContractFinalized ContractStatus = "finalized"
	ContractRenewed   ContractStatus = "renewed"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractCancelled, ContractFinalized, ContractRenewed:
		return true
	}
	return false
}

// Renewable reports whether a contract in this status may be renewed.
func (s ContractStatus) Renewable() bool {
	return s == ContractActive || s == ContractFinalized
}

// Contract binds a client to a training plan for a priced, time-bounded
// period. EndDate is fixed at creation (start + plan duration) and never
// recomputed. Created only inside a transactional workflow together with
// at least one income Transaction.
type Contract struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClientID         primitive.ObjectID  `bson:"clientId" json:"clientId"`
	PlanID           primitive.ObjectID  `bson:"planId" json:"planId"`
	TrainerID        *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	StartDate        time.Time           `bson:"startDate" json:"startDate"`
	EndDate          time.Time           `bson:"endDate" json:"endDate"`
	Price            float64             `bson:"price" json:"price"`
	Status           ContractStatus      `bson:"status" json:"status"`
	RenewsContractID *primitive.ObjectID `bson:"renewsContractId,omitempty" json:"renewsContractId,omitempty"`
}

// ContractSpec is the raw input for NewContract.
type ContractSpec struct {
	ClientID         primitive.ObjectID
	PlanID           primitive.ObjectID
	TrainerID        *primitive.ObjectID
	Price            float64
	DurationDays     int
	RenewsContractID *primitive.ObjectID
}

// NewContract builds an active contract starting now, ending after the
// plan's duration.
func NewContract(spec ContractSpec) (*Contract, error) {
	var bad []string
	if spec.ClientID.IsZero() {
		bad = append(bad, "clientId")
	}
	if spec.PlanID.IsZero() {
		bad = append(bad, "planId")
	}
	if spec.Price < 0 {
		bad = append(bad, "price")
	}
	if spec.DurationDays < 1 {
		bad = append(bad, "durationDays")
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}
	start := time.Now().UTC()
	return &Contract{
		ClientID:         spec.ClientID,
		PlanID:           spec.PlanID,
		TrainerID:        spec.TrainerID,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, spec.DurationDays),
		Price:            spec.Price,
		Status:           ContractActive,
		RenewsContractID: spec.RenewsContractID,
	}, nil
}
