package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
)

func newCatalog() (CatalogService, *fakePlanRepo, *fakeTrainerRepo) {
	plans := newFakePlanRepo()
	trainers := &fakeTrainerRepo{}
	return NewCatalogService(plans, trainers), plans, trainers
}

func TestCreatePlan(t *testing.T) {
	svc, plans, _ := newCatalog()

	id, err := svc.CreatePlan(context.Background(), "Weight Loss", 30, "Reduce body fat", domain.LevelBeginner, 120)
	require.NoError(t, err)

	plan := plans.plans[id]
	assert.Equal(t, "Weight Loss", plan.Name)
	assert.Equal(t, 30, plan.DurationDays)
}

func TestCreatePlanInvalid(t *testing.T) {
	svc, plans, _ := newCatalog()

	_, err := svc.CreatePlan(context.Background(), "", 0, "", domain.Level("pro"), -1)
	assert.Error(t, err)
	assert.Empty(t, plans.plans)
}

func TestUpdatePlanMergesPartialEdit(t *testing.T) {
	svc, plans, _ := newCatalog()
	id, err := svc.CreatePlan(context.Background(), "Weight Loss", 30, "Reduce body fat", domain.LevelBeginner, 120)
	require.NoError(t, err)

	price := 140.0
	require.NoError(t, svc.UpdatePlan(context.Background(), id, domain.TrainingPlanUpdate{SuggestedPrice: &price}))

	plan := plans.plans[id]
	assert.Equal(t, 140.0, plan.SuggestedPrice)
	assert.Equal(t, "Weight Loss", plan.Name)
}

func TestUpdatePlanUnknown(t *testing.T) {
	svc, _, _ := newCatalog()

	price := 140.0
	err := svc.UpdatePlan(context.Background(), primitive.NewObjectID(), domain.TrainingPlanUpdate{SuggestedPrice: &price})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestDeletePlan(t *testing.T) {
	svc, _, _ := newCatalog()
	id, err := svc.CreatePlan(context.Background(), "Weight Loss", 30, "Reduce body fat", domain.LevelBeginner, 120)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlan(context.Background(), id))
	assert.ErrorIs(t, svc.DeletePlan(context.Background(), id), ErrPlanNotFound)
}

func TestGetPlanUnknown(t *testing.T) {
	svc, _, _ := newCatalog()

	_, err := svc.GetPlan(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestCreateTrainer(t *testing.T) {
	svc, _, trainers := newCatalog()

	_, err := svc.CreateTrainer(context.Background(), "Greg Holt")
	require.NoError(t, err)

	_, err = svc.CreateTrainer(context.Background(), "  ")
	assert.Error(t, err)

	require.Len(t, trainers.trainers, 1, "the invalid trainer must not be stored")
	assert.Equal(t, "Greg Holt", trainers.trainers[0].Name)

	all, err := svc.ListTrainers(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
