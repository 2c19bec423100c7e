package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	clientCollectionName        = "clients"
	trainingPlanCollectionName  = "training_plans"
	trainerCollectionName       = "trainers"
	contractCollectionName      = "contracts"
	transactionCollectionName   = "transactions"
	nutritionPlanCollectionName = "nutrition_plans"
	progressCollectionName      = "progress_records"
)

// objectIDOrNull allows an explicit null for optional references.
var objectIDOrNull = bson.A{"objectId", "null"}

var numeric = bson.A{"double", "int", "long", "decimal"}

var collectionSchemas = map[string]bson.M{
	clientCollectionName: {
		"bsonType": "object",
		"required": bson.A{"name", "email", "phone", "registeredAt", "active"},
		"properties": bson.M{
			"name":         bson.M{"bsonType": "string"},
			"email":        bson.M{"bsonType": "string", "pattern": `^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`},
			"phone":        bson.M{"bsonType": "string", "pattern": `^\d{10}$`},
			"registeredAt": bson.M{"bsonType": "date"},
			"active":       bson.M{"bsonType": "bool"},
		},
	},
	trainingPlanCollectionName: {
		"bsonType": "object",
		"required": bson.A{"name", "durationDays", "goals", "level", "suggestedPrice"},
		"properties": bson.M{
			"name":           bson.M{"bsonType": "string"},
			"durationDays":   bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
			"goals":          bson.M{"bsonType": "string"},
			"level":          bson.M{"enum": bson.A{"beginner", "intermediate", "advanced"}},
			"suggestedPrice": bson.M{"bsonType": numeric, "minimum": 0},
		},
	},
	trainerCollectionName: {
		"bsonType": "object",
		"required": bson.A{"name"},
		"properties": bson.M{
			"name": bson.M{"bsonType": "string"},
		},
	},
	contractCollectionName: {
		"bsonType": "object",
		"required": bson.A{"clientId", "planId", "startDate", "endDate", "price", "status"},
		"properties": bson.M{
			"clientId":         bson.M{"bsonType": "objectId"},
			"planId":           bson.M{"bsonType": "objectId"},
			"trainerId":        bson.M{"bsonType": objectIDOrNull},
			"startDate":        bson.M{"bsonType": "date"},
			"endDate":          bson.M{"bsonType": "date"},
			"price":            bson.M{"bsonType": numeric, "minimum": 0},
			"status":           bson.M{"enum": bson.A{"active", "cancelled", "finalized", "renewed"}},
			"renewsContractId": bson.M{"bsonType": objectIDOrNull},
		},
	},
	transactionCollectionName: {
		"bsonType": "object",
		"required": bson.A{"kind", "amount", "description", "date"},
		"properties": bson.M{
			"contractId":  bson.M{"bsonType": objectIDOrNull},
			"clientId":    bson.M{"bsonType": objectIDOrNull},
			"kind":        bson.M{"enum": bson.A{"income", "expense"}},
			"amount":      bson.M{"bsonType": numeric, "minimum": 0},
			"description": bson.M{"bsonType": "string"},
			"reference":   bson.M{"bsonType": "string"},
			"date":        bson.M{"bsonType": "date"},
		},
	},
	nutritionPlanCollectionName: {
		"bsonType": "object",
		"required": bson.A{"contractId", "name", "meals"},
		"properties": bson.M{
			"contractId":  bson.M{"bsonType": "objectId"},
			"name":        bson.M{"bsonType": "string"},
			"description": bson.M{"bsonType": "string"},
			"meals": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"type", "description"},
					"properties": bson.M{
						"type":              bson.M{"enum": bson.A{"breakfast", "lunch", "dinner"}},
						"description":       bson.M{"bsonType": "string"},
						"estimatedCalories": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
					},
				},
			},
			"registeredAt": bson.M{"bsonType": "date"},
		},
	},
	progressCollectionName: {
		"bsonType": "object",
		"required": bson.A{"contractId", "date", "weightKg", "status"},
		"properties": bson.M{
			"contractId": bson.M{"bsonType": "objectId"},
			"date":       bson.M{"bsonType": "date"},
			"weightKg":   bson.M{"bsonType": numeric, "minimum": 0},
			"bodyFatPct": bson.M{"bsonType": numeric, "minimum": 0},
			"measurements": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"chest": bson.M{"bsonType": numeric, "minimum": 0},
					"arm":   bson.M{"bsonType": numeric, "minimum": 0},
					"waist": bson.M{"bsonType": numeric, "minimum": 0},
					"leg":   bson.M{"bsonType": numeric, "minimum": 0},
				},
			},
			"photoUrls": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string", "pattern": `^https?://.+$`}},
			"comments":  bson.M{"bsonType": "string"},
			"status":    bson.M{"enum": bson.A{"valid", "cancelled"}},
		},
	},
}

// EnsureSchemas creates every collection with its $jsonSchema validator,
// or updates the validator via collMod when the collection already exists.
// The store rejects writes violating these rules even when application-side
// validation is bypassed.
func EnsureSchemas(ctx context.Context, db *mongo.Database) error {
	for name, schema := range collectionSchemas {
		validator := bson.M{"$jsonSchema": schema}
		err := db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(validator))
		if err == nil {
			continue
		}
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.HasErrorCode(48) { // NamespaceExists
			res := db.RunCommand(ctx, bson.D{
				{Key: "collMod", Value: name},
				{Key: "validator", Value: validator},
			})
			if res.Err() != nil {
				return fmt.Errorf("collMod %s: %w", name, res.Err())
			}
			continue
		}
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}
