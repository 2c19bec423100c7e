package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrainingPlan(t *testing.T) {
	plan, err := NewTrainingPlan(" Strength and Power ", 90, " Increase maximal strength ", LevelAdvanced, 250)
	require.NoError(t, err)

	assert.Equal(t, "Strength and Power", plan.Name)
	assert.Equal(t, 90, plan.DurationDays)
	assert.Equal(t, "Increase maximal strength", plan.Goals)
	assert.Equal(t, LevelAdvanced, plan.Level)
	assert.Equal(t, 250.0, plan.SuggestedPrice)
}

func TestNewTrainingPlanCollectsAllInvalidFields(t *testing.T) {
	_, err := NewTrainingPlan("", 0, "  ", Level("expert"), -10)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ElementsMatch(t, []string{"name", "durationDays", "goals", "level", "suggestedPrice"}, vErr.Fields)
}

func TestMergeTrainingPlan(t *testing.T) {
	existing, err := NewTrainingPlan("Weight Loss", 30, "Reduce body fat", LevelBeginner, 120)
	require.NoError(t, err)

	duration := 45
	price := 140.0
	merged, err := MergeTrainingPlan(existing, TrainingPlanUpdate{
		DurationDays:   &duration,
		SuggestedPrice: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, 45, merged.DurationDays)
	assert.Equal(t, 140.0, merged.SuggestedPrice)
	assert.Equal(t, existing.Name, merged.Name)
	assert.Equal(t, existing.Level, merged.Level)
	assert.Equal(t, 30, existing.DurationDays, "merge must not mutate the original")
}

func TestMergeTrainingPlanRejectsEmptyUpdate(t *testing.T) {
	existing, err := NewTrainingPlan("Weight Loss", 30, "Reduce body fat", LevelBeginner, 120)
	require.NoError(t, err)

	_, err = MergeTrainingPlan(existing, TrainingPlanUpdate{})
	assert.Error(t, err)
}

func TestMergeTrainingPlanValidatesReplacedFields(t *testing.T) {
	existing, err := NewTrainingPlan("Weight Loss", 30, "Reduce body fat", LevelBeginner, 120)
	require.NoError(t, err)

	badLevel := Level("pro")
	badDuration := 0
	_, err = MergeTrainingPlan(existing, TrainingPlanUpdate{Level: &badLevel, DurationDays: &badDuration})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ElementsMatch(t, []string{"level", "durationDays"}, vErr.Fields)
}

func TestLevelValid(t *testing.T) {
	for _, l := range []Level{LevelBeginner, LevelIntermediate, LevelAdvanced} {
		assert.True(t, l.Valid(), "%s", l)
	}
	assert.False(t, Level("elite").Valid())
}
