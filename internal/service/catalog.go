package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

// CatalogService manages the training plan catalog and the trainer roster.
// Plans are edited and deleted freely; contracts hold their own copy of
// price and duration, so there is no cascade.
type CatalogService interface {
	CreatePlan(ctx context.Context, name string, durationDays int, goals string, level domain.Level, suggestedPrice float64) (primitive.ObjectID, error)
	ListPlans(ctx context.Context) ([]domain.TrainingPlan, error)
	GetPlan(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	UpdatePlan(ctx context.Context, id primitive.ObjectID, update domain.TrainingPlanUpdate) error
	DeletePlan(ctx context.Context, id primitive.ObjectID) error

	CreateTrainer(ctx context.Context, name string) (primitive.ObjectID, error)
	ListTrainers(ctx context.Context) ([]domain.Trainer, error)
}

type catalogService struct {
	planRepo    repository.TrainingPlanRepository
	trainerRepo repository.TrainerRepository
}

func NewCatalogService(planRepo repository.TrainingPlanRepository, trainerRepo repository.TrainerRepository) CatalogService {
	return &catalogService{planRepo: planRepo, trainerRepo: trainerRepo}
}

func (s *catalogService) CreatePlan(ctx context.Context, name string, durationDays int, goals string, level domain.Level, suggestedPrice float64) (primitive.ObjectID, error) {
	plan, err := domain.NewTrainingPlan(name, durationDays, goals, level, suggestedPrice)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return s.planRepo.Create(ctx, plan)
}

func (s *catalogService) ListPlans(ctx context.Context) ([]domain.TrainingPlan, error) {
	return s.planRepo.GetAll(ctx)
}

func (s *catalogService) GetPlan(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *catalogService) UpdatePlan(ctx context.Context, id primitive.ObjectID, update domain.TrainingPlanUpdate) error {
	existing, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	merged, err := domain.MergeTrainingPlan(existing, update)
	if err != nil {
		return err
	}
	return s.planRepo.Update(ctx, merged)
}

func (s *catalogService) DeletePlan(ctx context.Context, id primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

func (s *catalogService) CreateTrainer(ctx context.Context, name string) (primitive.ObjectID, error) {
	trainer, err := domain.NewTrainer(name)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return s.trainerRepo.Create(ctx, trainer)
}

func (s *catalogService) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.GetAll(ctx)
}
