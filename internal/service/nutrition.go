package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

var ErrNutritionPlanNotFound = errors.New("nutrition plan not found")

// NutritionService manages nutrition plans attached to active contracts.
// By convention at most one plan per contract per calendar day; the
// eligibility listing enforces the convention at selection time.
type NutritionService interface {
	// EligibleContracts lists active contracts with no plan registered
	// today.
	EligibleContracts(ctx context.Context) ([]repository.ContractWithInfo, error)
	// Create attaches a plan to an active contract. The contract must
	// exist; meals come from a domain.MealBuilder.
	Create(ctx context.Context, contractID primitive.ObjectID, name, description string, meals []domain.Meal) (primitive.ObjectID, error)
	// Replace swaps a plan's content (name, description, rebuilt meal
	// list), keeping its identity and registration date.
	Replace(ctx context.Context, planID primitive.ObjectID, name, description string, meals []domain.Meal) error
	Delete(ctx context.Context, planID primitive.ObjectID) error
	ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]repository.NutritionPlanWithInfo, error)
	ListByContract(ctx context.Context, contractID primitive.ObjectID) ([]domain.NutritionPlan, error)
}

type nutritionService struct {
	nutritionRepo repository.NutritionPlanRepository
	contractRepo  repository.ContractRepository
}

func NewNutritionService(
	nutritionRepo repository.NutritionPlanRepository,
	contractRepo repository.ContractRepository,
) NutritionService {
	return &nutritionService{
		nutritionRepo: nutritionRepo,
		contractRepo:  contractRepo,
	}
}

func (s *nutritionService) EligibleContracts(ctx context.Context) ([]repository.ContractWithInfo, error) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.contractRepo.ActiveEligibleForNutrition(ctx, startOfDay)
}

func (s *nutritionService) Create(ctx context.Context, contractID primitive.ObjectID, name, description string, meals []domain.Meal) (primitive.ObjectID, error) {
	contract, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrContractNotFound
		}
		return primitive.NilObjectID, err
	}
	if contract.Status != domain.ContractActive {
		return primitive.NilObjectID, ErrContractNotActive
	}
	plan, err := domain.NewNutritionPlan(contractID, name, description, meals)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return s.nutritionRepo.Create(ctx, plan)
}

func (s *nutritionService) Replace(ctx context.Context, planID primitive.ObjectID, name, description string, meals []domain.Meal) error {
	existing, err := s.nutritionRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNutritionPlanNotFound
		}
		return err
	}
	replacement, err := domain.NewNutritionPlan(existing.ContractID, name, description, meals)
	if err != nil {
		return err
	}
	replacement.ID = existing.ID
	replacement.RegisteredAt = existing.RegisteredAt
	return s.nutritionRepo.Update(ctx, replacement)
}

func (s *nutritionService) Delete(ctx context.Context, planID primitive.ObjectID) error {
	err := s.nutritionRepo.Delete(ctx, planID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNutritionPlanNotFound
	}
	return err
}

func (s *nutritionService) ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]repository.NutritionPlanWithInfo, error) {
	return s.nutritionRepo.ByClientWithInfo(ctx, clientID)
}

func (s *nutritionService) ListByContract(ctx context.Context, contractID primitive.ObjectID) ([]domain.NutritionPlan, error) {
	return s.nutritionRepo.GetByContract(ctx, contractID)
}
