package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionKind distinguishes money coming in from money going out.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a financial movement. Both references are nullable: a
// transaction need not be tied to a contract or a client (rent, equipment,
// walk-in sales). Immutable once created; there is no update or delete.
type Transaction struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ContractID  *primitive.ObjectID `bson:"contractId" json:"contractId"`
	ClientID    *primitive.ObjectID `bson:"clientId" json:"clientId"`
	Kind        TransactionKind     `bson:"kind" json:"kind"`
	Amount      float64             `bson:"amount" json:"amount"`
	Description string              `bson:"description" json:"description"`
	Reference   string              `bson:"reference" json:"reference"`
	Date        time.Time           `bson:"date" json:"date"`
}

// TransactionSpec is the raw input for NewTransaction.
type TransactionSpec struct {
	ContractID  *primitive.ObjectID
	ClientID    *primitive.ObjectID
	Kind        TransactionKind
	Amount      float64
	Description string
}

// NewTransaction builds a dated transaction record with a fresh receipt
// reference.
func NewTransaction(spec TransactionSpec) (*Transaction, error) {
	var bad []string
	if !spec.Kind.Valid() {
		bad = append(bad, "kind")
	}
	if spec.Amount < 0 {
		bad = append(bad, "amount")
	}
	if strings.TrimSpace(spec.Description) == "" {
		bad = append(bad, "description")
	}
	if len(bad) > 0 {
		return nil, newValidationError(bad...)
	}
	return &Transaction{
		ContractID:  spec.ContractID,
		ClientID:    spec.ClientID,
		Kind:        spec.Kind,
		Amount:      spec.Amount,
		Description: strings.TrimSpace(spec.Description),
		Reference:   uuid.NewString(),
		Date:        time.Now().UTC(),
	}, nil
}
