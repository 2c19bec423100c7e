package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Writes issued under a transaction-bound context (see service.TxRunner)
// join that transaction; with a plain context every method is an
// independent single-document operation.

// ClientRepository defines access to the clients collection.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	GetAll(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingPlanRepository defines access to the training plans collection.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetAll(ctx context.Context) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainerRepository defines access to the trainers collection.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetAll(ctx context.Context) ([]domain.Trainer, error)
}

// ContractWithInfo is a contract annotated with related records for
// display. Read-only convenience shape produced by $lookup aggregations.
type ContractWithInfo struct {
	domain.Contract `bson:",inline"`
	Client          domain.Client       `bson:"clientInfo"`
	Plan            domain.TrainingPlan `bson:"planInfo"`
	Trainer         *domain.Trainer     `bson:"trainerInfo,omitempty"`
}

// ContractRepository defines access to the contracts collection.
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Contract, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ContractStatus) error
	// UpdateManyStatus transitions the given contracts and returns the
	// modified count. Not all-or-nothing across documents.
	UpdateManyStatus(ctx context.Context, ids []primitive.ObjectID, status domain.ContractStatus) (int64, error)
	// CancelActiveByClient cancels every active contract of a client and
	// returns how many were modified.
	CancelActiveByClient(ctx context.Context, clientID primitive.ObjectID) (int64, error)

	AllWithInfo(ctx context.Context) ([]ContractWithInfo, error)
	ActiveWithInfo(ctx context.Context) ([]ContractWithInfo, error)
	// RenewableWithInfo returns active and finalized contracts, newest
	// end date first.
	RenewableWithInfo(ctx context.Context) ([]ContractWithInfo, error)
	// ExpiredActiveWithInfo returns active contracts whose end date is in
	// the past.
	ExpiredActiveWithInfo(ctx context.Context) ([]ContractWithInfo, error)
	ByClientWithInfo(ctx context.Context, clientID primitive.ObjectID) ([]ContractWithInfo, error)
	// ActiveEligibleForNutrition returns active contracts with no
	// nutrition plan registered since startOfDay.
	ActiveEligibleForNutrition(ctx context.Context, startOfDay time.Time) ([]ContractWithInfo, error)
}

// Balance aggregates transaction amounts by kind.
type Balance struct {
	Income  float64
	Expense float64
}

// Net is total income minus total expense.
func (b Balance) Net() float64 { return b.Income - b.Expense }

// BalanceFilter restricts a balance query. Nil fields mean no restriction;
// From/To are inclusive.
type BalanceFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID *primitive.ObjectID
}

// TransactionRepository defines access to the financial transactions
// collection. Transactions are immutable: no update, no delete.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) (primitive.ObjectID, error)
	GetBalance(ctx context.Context, filter BalanceFilter) (Balance, error)
	GetByClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.Transaction, error)
}

// NutritionPlanWithInfo annotates a nutrition plan with its contract and
// the training plan behind it.
type NutritionPlanWithInfo struct {
	domain.NutritionPlan `bson:",inline"`
	Contract             domain.Contract     `bson:"contractInfo"`
	TrainingPlan         domain.TrainingPlan `bson:"trainingPlanInfo"`
}

// NutritionPlanRepository defines access to the nutrition plans collection.
type NutritionPlanRepository interface {
	Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error)
	GetByContract(ctx context.Context, contractID primitive.ObjectID) ([]domain.NutritionPlan, error)
	ByClientWithInfo(ctx context.Context, clientID primitive.ObjectID) ([]NutritionPlanWithInfo, error)
	Update(ctx context.Context, plan *domain.NutritionPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgressRepository defines access to the physical progress collection.
type ProgressRepository interface {
	Create(ctx context.Context, record *domain.ProgressRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressRecord, error)
	GetByContract(ctx context.Context, contractID primitive.ObjectID) ([]domain.ProgressRecord, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ProgressStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
