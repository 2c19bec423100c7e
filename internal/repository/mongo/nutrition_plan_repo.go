package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

// mongoNutritionPlanRepository implements repository.NutritionPlanRepository
type mongoNutritionPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoNutritionPlanRepository(db *mongo.Database) repository.NutritionPlanRepository {
	return &mongoNutritionPlanRepository{
		collection: db.Collection(nutritionPlanCollectionName),
	}
}

func (r *mongoNutritionPlanRepository) Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted nutrition plan ID")
	}
	return insertedID, nil
}

func (r *mongoNutritionPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error) {
	var plan domain.NutritionPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByContract lists a contract's nutrition plans, newest first.
func (r *mongoNutritionPlanRepository) GetByContract(ctx context.Context, contractID primitive.ObjectID) ([]domain.NutritionPlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"contractId": contractID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.NutritionPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ByClientWithInfo lists every nutrition plan under any of a client's
// contracts, annotated with the contract and its training plan, newest
// first.
func (r *mongoNutritionPlanRepository) ByClientWithInfo(ctx context.Context, clientID primitive.ObjectID) ([]repository.NutritionPlanWithInfo, error) {
	pipeline := []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from": contractCollectionName, "localField": "contractId",
			"foreignField": "_id", "as": "contractInfo",
		}}},
		{{Key: "$unwind", Value: "$contractInfo"}},
		{{Key: "$match", Value: bson.M{"contractInfo.clientId": clientID}}},
		{{Key: "$lookup", Value: bson.M{
			"from": trainingPlanCollectionName, "localField": "contractInfo.planId",
			"foreignField": "_id", "as": "trainingPlanInfo",
		}}},
		{{Key: "$unwind", Value: "$trainingPlanInfo"}},
		{{Key: "$sort", Value: bson.D{{Key: "registeredAt", Value: -1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []repository.NutritionPlanWithInfo
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Update replaces every non-identifier field of the plan document.
func (r *mongoNutritionPlanRepository) Update(ctx context.Context, plan *domain.NutritionPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("nutrition plan ID is required for update")
	}
	updateDoc := bson.M{
		"$set": bson.M{
			"contractId":   plan.ContractID,
			"name":         plan.Name,
			"description":  plan.Description,
			"meals":        plan.Meals,
			"registeredAt": plan.RegisteredAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoNutritionPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
