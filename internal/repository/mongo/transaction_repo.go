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

// mongoTransactionRepository implements repository.TransactionRepository
type mongoTransactionRepository struct {
	collection *mongo.Collection
}

func NewMongoTransactionRepository(db *mongo.Database) repository.TransactionRepository {
	return &mongoTransactionRepository{
		collection: db.Collection(transactionCollectionName),
	}
}

// Create inserts a financial transaction. Records are immutable afterwards.
func (r *mongoTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) (primitive.ObjectID, error) {
	txn.ID = primitive.NewObjectID()
	result, err := r.collection.InsertOne(ctx, txn)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted transaction ID")
	}
	return insertedID, nil
}

// GetBalance sums amounts grouped by kind over the filtered subset.
func (r *mongoTransactionRepository) GetBalance(ctx context.Context, filter repository.BalanceFilter) (repository.Balance, error) {
	match := bson.M{}
	if filter.From != nil && filter.To != nil {
		match["date"] = bson.M{"$gte": *filter.From, "$lte": *filter.To}
	} else if filter.From != nil {
		match["date"] = bson.M{"$gte": *filter.From}
	} else if filter.To != nil {
		match["date"] = bson.M{"$lte": *filter.To}
	}
	if filter.ClientID != nil {
		match["clientId"] = *filter.ClientID
	}

	var pipeline []bson.D
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.M{
		"_id":   "$kind",
		"total": bson.M{"$sum": "$amount"},
	}}})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return repository.Balance{}, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Kind  domain.TransactionKind `bson:"_id"`
		Total float64                `bson:"total"`
	}
	if err = cursor.All(ctx, &groups); err != nil {
		return repository.Balance{}, err
	}

	var balance repository.Balance
	for _, g := range groups {
		switch g.Kind {
		case domain.KindIncome:
			balance.Income = g.Total
		case domain.KindExpense:
			balance.Expense = g.Total
		}
	}
	return balance, nil
}

// GetByClient lists one client's transactions in chronological order.
func (r *mongoTransactionRepository) GetByClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.Transaction, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"clientId": clientID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txns []domain.Transaction
	if err = cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}
