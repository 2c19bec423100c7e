package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

// --- Error Definitions ---
var (
	ErrClientNotFound = errors.New("client not found")
	ErrPlanNotFound   = errors.New("training plan not found")
)

// NutritionInput is the optional nutrition plan collected alongside an
// enrollment. Meals come from a domain.MealBuilder; when empty, no plan is
// created.
type NutritionInput struct {
	Name        string
	Description string
	Meals       []domain.Meal
}

// EnrollmentInput is the validated input for EnrollClient.
type EnrollmentInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	PlanID      primitive.ObjectID
	FinalPrice  float64
	TrainerID   *primitive.ObjectID
	Nutrition   *NutritionInput
}

// EnrollmentResult reports what a successful enrollment created.
type EnrollmentResult struct {
	ClientID        primitive.ObjectID
	ContractID      primitive.ObjectID
	TransactionID   primitive.ObjectID
	NutritionPlanID *primitive.ObjectID
	PlanName        string
}

// EnrollmentService drives the two enrollment workflows: a brand-new
// client, or a new contract for an existing one. Either every write of a
// workflow is committed or none is.
type EnrollmentService interface {
	EnrollClient(ctx context.Context, input EnrollmentInput) (*EnrollmentResult, error)
	AttachPlan(ctx context.Context, clientID primitive.ObjectID, input AttachPlanInput) (*EnrollmentResult, error)
}

// AttachPlanInput is the validated input for AttachPlan.
type AttachPlanInput struct {
	PlanID     primitive.ObjectID
	FinalPrice float64
	TrainerID  *primitive.ObjectID
	Nutrition  *NutritionInput
}

type enrollmentService struct {
	clientRepo    repository.ClientRepository
	planRepo      repository.TrainingPlanRepository
	contractRepo  repository.ContractRepository
	txnRepo       repository.TransactionRepository
	nutritionRepo repository.NutritionPlanRepository
	runner        TxRunner
	logger        *zap.Logger
}

func NewEnrollmentService(
	clientRepo repository.ClientRepository,
	planRepo repository.TrainingPlanRepository,
	contractRepo repository.ContractRepository,
	txnRepo repository.TransactionRepository,
	nutritionRepo repository.NutritionPlanRepository,
	runner TxRunner,
	logger *zap.Logger,
) EnrollmentService {
	return &enrollmentService{
		clientRepo:    clientRepo,
		planRepo:      planRepo,
		contractRepo:  contractRepo,
		txnRepo:       txnRepo,
		nutritionRepo: nutritionRepo,
		runner:        runner,
		logger:        logger,
	}
}

// EnrollClient creates a client, an active contract, the enrollment
// payment, and (optionally) a nutrition plan in one atomic unit.
func (s *enrollmentService) EnrollClient(ctx context.Context, input EnrollmentInput) (*EnrollmentResult, error) {
	client, err := domain.NewClient(input.ClientName, input.ClientEmail, input.ClientPhone)
	if err != nil {
		return nil, err
	}

	// Plan lookup stays outside the transaction: read-only, and a missing
	// plan must abort before anything is written.
	plan, err := s.planRepo.GetByID(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	var result EnrollmentResult
	err = runAtomically(ctx, s.runner, func(ctx context.Context) error {
		clientID, err := s.clientRepo.Create(ctx, client)
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		result.ClientID = clientID

		contractID, txnID, nutritionID, err := s.createContractBundle(ctx, clientID, plan, input.FinalPrice, input.TrainerID, nil, input.Nutrition,
			fmt.Sprintf("Enrollment payment - %s", plan.Name))
		if err != nil {
			return err
		}
		result.ContractID, result.TransactionID, result.NutritionPlanID = contractID, txnID, nutritionID
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.PlanName = plan.Name
	s.logger.Info("client enrolled",
		zap.String("clientId", result.ClientID.Hex()),
		zap.String("contractId", result.ContractID.Hex()),
		zap.Float64("price", input.FinalPrice),
		zap.Bool("nutritionPlan", result.NutritionPlanID != nil),
	)
	return &result, nil
}

// AttachPlan creates a contract, its initial payment, and an optional
// nutrition plan for an existing client, atomically.
func (s *enrollmentService) AttachPlan(ctx context.Context, clientID primitive.ObjectID, input AttachPlanInput) (*EnrollmentResult, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	result := EnrollmentResult{ClientID: client.ID}
	err = runAtomically(ctx, s.runner, func(ctx context.Context) error {
		contractID, txnID, nutritionID, err := s.createContractBundle(ctx, client.ID, plan, input.FinalPrice, input.TrainerID, nil, input.Nutrition,
			fmt.Sprintf("Initial payment - %s", plan.Name))
		if err != nil {
			return err
		}
		result.ContractID, result.TransactionID, result.NutritionPlanID = contractID, txnID, nutritionID
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.PlanName = plan.Name
	s.logger.Info("plan attached",
		zap.String("clientId", client.ID.Hex()),
		zap.String("contractId", result.ContractID.Hex()),
		zap.Float64("price", input.FinalPrice),
	)
	return &result, nil
}

// createContractBundle performs the shared contract + payment + optional
// nutrition plan writes. Must run under a transaction-bound context.
func (s *enrollmentService) createContractBundle(
	ctx context.Context,
	clientID primitive.ObjectID,
	plan *domain.TrainingPlan,
	price float64,
	trainerID *primitive.ObjectID,
	renews *primitive.ObjectID,
	nutrition *NutritionInput,
	paymentDescription string,
) (contractID, txnID primitive.ObjectID, nutritionID *primitive.ObjectID, err error) {
	contract, err := domain.NewContract(domain.ContractSpec{
		ClientID:         clientID,
		PlanID:           plan.ID,
		TrainerID:        trainerID,
		Price:            price,
		DurationDays:     plan.DurationDays,
		RenewsContractID: renews,
	})
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, nil, err
	}
	contractID, err = s.contractRepo.Create(ctx, contract)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, nil, fmt.Errorf("create contract: %w", err)
	}

	payment, err := domain.NewTransaction(domain.TransactionSpec{
		ContractID:  &contractID,
		ClientID:    &clientID,
		Kind:        domain.KindIncome,
		Amount:      price,
		Description: paymentDescription,
	})
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, nil, err
	}
	txnID, err = s.txnRepo.Create(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, nil, fmt.Errorf("create payment: %w", err)
	}

	if nutrition != nil && len(nutrition.Meals) > 0 {
		nutritionPlan, err := domain.NewNutritionPlan(contractID, nutrition.Name, nutrition.Description, nutrition.Meals)
		if err != nil {
			return primitive.NilObjectID, primitive.NilObjectID, nil, err
		}
		id, err := s.nutritionRepo.Create(ctx, nutritionPlan)
		if err != nil {
			return primitive.NilObjectID, primitive.NilObjectID, nil, fmt.Errorf("create nutrition plan: %w", err)
		}
		nutritionID = &id
	}
	return contractID, txnID, nutritionID, nil
}
