// internal/repository/mongo/contract_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

// mongoContractRepository implements repository.ContractRepository
type mongoContractRepository struct {
	collection *mongo.Collection
}

func NewMongoContractRepository(db *mongo.Database) repository.ContractRepository {
	return &mongoContractRepository{
		collection: db.Collection(contractCollectionName),
	}
}

// Create inserts a new contract. Callers compose this with transaction
// writes through a session-bound context; on its own it is an independent
// insert.
func (r *mongoContractRepository) Create(ctx context.Context, contract *domain.Contract) (primitive.ObjectID, error) {
	contract.ID = primitive.NewObjectID()
	result, err := r.collection.InsertOne(ctx, contract)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted contract ID")
	}
	return insertedID, nil
}

func (r *mongoContractRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Contract, error) {
	var contract domain.Contract
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&contract)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// UpdateStatus sets the status of a single contract.
func (r *mongoContractRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ContractStatus) error {
	updateDoc := bson.M{"$set": bson.M{"status": status}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateManyStatus transitions the given contracts in one update-many.
// Atomic per document only; partial success is reported via the count.
func (r *mongoContractRepository) UpdateManyStatus(ctx context.Context, ids []primitive.ObjectID, status domain.ContractStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CancelActiveByClient cancels every active contract of one client.
func (r *mongoContractRepository) CancelActiveByClient(ctx context.Context, clientID primitive.ObjectID) (int64, error) {
	filter := bson.M{"clientId": clientID, "status": domain.ContractActive}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": domain.ContractCancelled}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// infoLookupStages joins client and plan documents onto each contract.
func infoLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from": clientCollectionName, "localField": "clientId",
			"foreignField": "_id", "as": "clientInfo",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": trainingPlanCollectionName, "localField": "planId",
			"foreignField": "_id", "as": "planInfo",
		}}},
		{{Key: "$unwind", Value: "$clientInfo"}},
		{{Key: "$unwind", Value: "$planInfo"}},
	}
}

func (r *mongoContractRepository) aggregateWithInfo(ctx context.Context, pipeline []bson.D) ([]repository.ContractWithInfo, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contracts []repository.ContractWithInfo
	if err = cursor.All(ctx, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// AllWithInfo lists every contract annotated with client, plan and
// (optionally) trainer, newest start first.
func (r *mongoContractRepository) AllWithInfo(ctx context.Context) ([]repository.ContractWithInfo, error) {
	pipeline := infoLookupStages()
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": trainerCollectionName, "localField": "trainerId",
			"foreignField": "_id", "as": "trainerInfo",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$trainerInfo", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "startDate", Value: -1}}}},
	)
	return r.aggregateWithInfo(ctx, pipeline)
}

// ActiveWithInfo lists active contracts with client and plan info.
func (r *mongoContractRepository) ActiveWithInfo(ctx context.Context) ([]repository.ContractWithInfo, error) {
	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{"status": domain.ContractActive}}},
	}, infoLookupStages()...)
	return r.aggregateWithInfo(ctx, pipeline)
}

// RenewableWithInfo lists contracts eligible for renewal (active or
// finalized), newest end date first.
func (r *mongoContractRepository) RenewableWithInfo(ctx context.Context) ([]repository.ContractWithInfo, error) {
	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": bson.A{domain.ContractActive, domain.ContractFinalized}}}}},
	}, infoLookupStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "endDate", Value: -1}}}})
	return r.aggregateWithInfo(ctx, pipeline)
}

// ExpiredActiveWithInfo lists active contracts whose end date has passed.
func (r *mongoContractRepository) ExpiredActiveWithInfo(ctx context.Context) ([]repository.ContractWithInfo, error) {
	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{
			"status":  domain.ContractActive,
			"endDate": bson.M{"$lt": time.Now().UTC()},
		}}},
	}, infoLookupStages()...)
	return r.aggregateWithInfo(ctx, pipeline)
}

// ByClientWithInfo lists one client's contracts, newest start first.
func (r *mongoContractRepository) ByClientWithInfo(ctx context.Context, clientID primitive.ObjectID) ([]repository.ContractWithInfo, error) {
	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{"clientId": clientID}}},
	}, infoLookupStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "startDate", Value: -1}}}})
	return r.aggregateWithInfo(ctx, pipeline)
}

// ActiveEligibleForNutrition lists active contracts whose latest nutrition
// plan (if any) predates startOfDay. One plan per contract per day is a
// convention, enforced here at query time rather than by a unique index.
func (r *mongoContractRepository) ActiveEligibleForNutrition(ctx context.Context, startOfDay time.Time) ([]repository.ContractWithInfo, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"status": domain.ContractActive}}},
		{{Key: "$lookup", Value: bson.M{
			"from": nutritionPlanCollectionName, "localField": "_id",
			"foreignField": "contractId", "as": "nutritionPlans",
		}}},
		{{Key: "$addFields", Value: bson.M{"latestNutrition": bson.M{"$max": "$nutritionPlans.registeredAt"}}}},
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"latestNutrition": bson.M{"$exists": false}},
			bson.M{"latestNutrition": nil},
			bson.M{"latestNutrition": bson.M{"$lt": startOfDay}},
		}}}},
	}
	pipeline = append(pipeline, infoLookupStages()...)
	return r.aggregateWithInfo(ctx, pipeline)
}
