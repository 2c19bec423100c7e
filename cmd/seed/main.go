package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"gymops/gym-manager/internal/config"
	"gymops/gym-manager/internal/domain"
	store "gymops/gym-manager/internal/repository/mongo"
)

// Seeds the database with a development data set covering every contract
// state the shell's workflows operate on: active, expired-but-active,
// finalized, cancelled (with and without refund) and a renewal pair.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	client, err := store.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := store.DisconnectDB(client); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := client.Database(cfg.Database.Name)
	if err := store.EnsureSchemas(ctx, db); err != nil {
		logger.Fatal("failed to ensure collection schemas", zap.Error(err))
	}

	if err := seed(ctx, db, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("database seeded")
}

func seed(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	collections := []string{
		"clients", "training_plans", "trainers",
		"contracts", "transactions", "nutrition_plans", "progress_records",
	}
	for _, name := range collections {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
	}
	logger.Info("cleared existing collections", zap.Int("count", len(collections)))

	now := time.Now().UTC()
	days := func(n int) time.Time { return now.AddDate(0, 0, n) }
	months := func(n int) time.Time { return now.AddDate(0, n, 0) }

	clientIDs, err := insertAll(ctx, db.Collection("clients"),
		domain.Client{Name: "John Price", Email: "john.price@email.com", Phone: "3101234567", RegisteredAt: months(-12), Active: true},
		domain.Client{Name: "Mary Rogers", Email: "mary.r@email.com", Phone: "3118765432", RegisteredAt: months(-10), Active: true},
		domain.Client{Name: "Carl Graham", Email: "carl.graham@email.com", Phone: "3123456789", RegisteredAt: months(-8), Active: true},
		domain.Client{Name: "Anna Martin", Email: "anna.martin@email.com", Phone: "3139876543", RegisteredAt: months(-6), Active: true},
		domain.Client{Name: "Peter Sands", Email: "peter.s@email.com", Phone: "3145678901", RegisteredAt: months(-4), Active: true},
		domain.Client{Name: "Laura Jimenez", Email: "laura.j@email.com", Phone: "3152345678", RegisteredAt: months(-3), Active: true},
		domain.Client{Name: "Andrew Castro", Email: "andrew.castro@email.com", Phone: "3168765432", RegisteredAt: months(-2), Active: true},
		domain.Client{Name: "Sophie Vargas", Email: "sophie.v@email.com", Phone: "3173456789", RegisteredAt: months(-1), Active: true},
		domain.Client{Name: "David Ortiz", Email: "david.ortiz@email.com", Phone: "3189876543", RegisteredAt: days(-15), Active: true},
		domain.Client{Name: "Valerie Moore", Email: "valerie.moore@email.com", Phone: "3195678901", RegisteredAt: days(-5), Active: false},
	)
	if err != nil {
		return err
	}
	logger.Info("clients inserted", zap.Int("count", len(clientIDs)))

	plans := []domain.TrainingPlan{
		{Name: "Strength and Power", DurationDays: 90, Goals: "Increase maximal strength", Level: domain.LevelAdvanced, SuggestedPrice: 250},
		{Name: "Muscle Hypertrophy", DurationDays: 60, Goals: "Gain muscle mass", Level: domain.LevelIntermediate, SuggestedPrice: 180},
		{Name: "Weight Loss", DurationDays: 30, Goals: "Reduce body fat", Level: domain.LevelBeginner, SuggestedPrice: 120},
		{Name: "Functional Conditioning", DurationDays: 45, Goals: "Improve mobility and endurance", Level: domain.LevelIntermediate, SuggestedPrice: 150},
		{Name: "Competition Prep", DurationDays: 120, Goals: "Stage-ready peaking", Level: domain.LevelAdvanced, SuggestedPrice: 400},
	}
	planIDs, err := insertAll(ctx, db.Collection("training_plans"), toAny(plans)...)
	if err != nil {
		return err
	}
	logger.Info("training plans inserted", zap.Int("count", len(planIDs)))

	trainerIDs, err := insertAll(ctx, db.Collection("trainers"),
		domain.Trainer{Name: "Greg Holt"},
		domain.Trainer{Name: "Irene Walsh"},
	)
	if err != nil {
		return err
	}

	contracts := []domain.Contract{
		// Active, one with a trainer and a nutrition plan attached below.
		{ClientID: clientIDs[0], PlanID: planIDs[0], TrainerID: &trainerIDs[0], StartDate: days(-20), EndDate: days(70), Price: 250, Status: domain.ContractActive},
		{ClientID: clientIDs[1], PlanID: planIDs[1], StartDate: days(-10), EndDate: days(50), Price: 175, Status: domain.ContractActive},
		// Past its end date but still active, the finalize workflow's input.
		{ClientID: clientIDs[2], PlanID: planIDs[2], StartDate: days(-40), EndDate: days(-10), Price: 120, Status: domain.ContractActive},
		// Finalized.
		{ClientID: clientIDs[3], PlanID: planIDs[3], StartDate: months(-3), EndDate: days(-48), Price: 150, Status: domain.ContractFinalized},
		{ClientID: clientIDs[0], PlanID: planIDs[2], StartDate: months(-6), EndDate: months(-5), Price: 110, Status: domain.ContractFinalized},
		// Cancelled, the first one with a refund recorded below.
		{ClientID: clientIDs[4], PlanID: planIDs[0], StartDate: months(-5), EndDate: months(-2), Price: 240, Status: domain.ContractCancelled},
		{ClientID: clientIDs[5], PlanID: planIDs[1], StartDate: days(-50), EndDate: days(10), Price: 180, Status: domain.ContractCancelled},
		// Renewal pair: the successor's link is set after insert.
		{ClientID: clientIDs[6], PlanID: planIDs[3], StartDate: days(-80), EndDate: days(-35), Price: 150, Status: domain.ContractRenewed},
		{ClientID: clientIDs[6], PlanID: planIDs[3], TrainerID: &trainerIDs[1], StartDate: days(-35), EndDate: days(10), Price: 160, Status: domain.ContractActive},
		// More active volume.
		{ClientID: clientIDs[7], PlanID: planIDs[2], StartDate: days(-3), EndDate: days(27), Price: 120, Status: domain.ContractActive},
		{ClientID: clientIDs[8], PlanID: planIDs[4], StartDate: days(-15), EndDate: days(105), Price: 400, Status: domain.ContractActive},
	}
	contractIDs, err := insertAll(ctx, db.Collection("contracts"), toAny(contracts)...)
	if err != nil {
		return err
	}
	_, err = db.Collection("contracts").UpdateOne(ctx,
		bson.M{"_id": contractIDs[8]},
		bson.M{"$set": bson.M{"renewsContractId": contractIDs[7]}})
	if err != nil {
		return err
	}
	logger.Info("contracts inserted", zap.Int("count", len(contractIDs)))

	// Each contract gets its enrollment payment.
	var payments []any
	for i, c := range contracts {
		contractID, clientID := contractIDs[i], c.ClientID
		payments = append(payments, domain.Transaction{
			ContractID:  &contractID,
			ClientID:    &clientID,
			Kind:        domain.KindIncome,
			Amount:      c.Price,
			Description: "Enrollment payment - " + planName(plans, planIDs, c.PlanID),
			Reference:   uuid.NewString(),
			Date:        c.StartDate,
		})
	}
	if _, err := insertAll(ctx, db.Collection("transactions"), payments...); err != nil {
		return err
	}

	bodyFat := func(v float64) *float64 { return &v }
	cm := func(v float64) *float64 { return &v }
	progress := []domain.ProgressRecord{
		{ContractID: contractIDs[0], Date: days(-13), WeightKg: 85, BodyFatPct: bodyFat(15.5),
			Measurements: &domain.Measurements{Chest: cm(110), Arm: cm(39), Waist: cm(85), Leg: cm(60)},
			PhotoURLs:    []string{"https://placehold.co/600x400"}, Comments: "Plan start.", Status: domain.ProgressValid},
		{ContractID: contractIDs[0], Date: days(-6), WeightKg: 84.5, BodyFatPct: bodyFat(15.1),
			Measurements: &domain.Measurements{Chest: cm(110.5), Arm: cm(39.5), Waist: cm(84), Leg: cm(60.5)},
			Comments:     "Adapting well.", Status: domain.ProgressValid},
		{ContractID: contractIDs[0], Date: days(-2), WeightKg: 99, Status: domain.ProgressCancelled},
		{ContractID: contractIDs[1], Date: days(-3), WeightKg: 62, BodyFatPct: bodyFat(22),
			Measurements: &domain.Measurements{Waist: cm(65)}, Comments: "Highly motivated.", Status: domain.ProgressValid},
	}
	if _, err := insertAll(ctx, db.Collection("progress_records"), toAny(progress)...); err != nil {
		return err
	}

	kcal := func(v int) *int { return &v }
	nutrition := []domain.NutritionPlan{
		{ContractID: contractIDs[0], Name: "Strength and Volume Diet", Description: "High protein and carbohydrates.",
			Meals: []domain.Meal{
				{Type: domain.MealBreakfast, Description: "Oatmeal with eggs and cheese", EstimatedCalories: kcal(600)},
				{Type: domain.MealLunch, Description: "Rice, beans and grilled beef", EstimatedCalories: kcal(1200)},
				{Type: domain.MealDinner, Description: "Chicken breast with rice", EstimatedCalories: kcal(700)},
			},
			RegisteredAt: days(-20)},
		{ContractID: contractIDs[8], Name: "Conditioning Diet", Description: "Balanced for endurance.",
			Meals: []domain.Meal{
				{Type: domain.MealLunch, Description: "Whole-grain pasta with vegetables", EstimatedCalories: kcal(800)},
			},
			RegisteredAt: days(-30)},
	}
	if _, err := insertAll(ctx, db.Collection("nutrition_plans"), toAny(nutrition)...); err != nil {
		return err
	}

	misc := []domain.Transaction{
		{Kind: domain.KindExpense, Amount: 350, Description: "Facility rent", Reference: uuid.NewString(), Date: days(-20)},
		{Kind: domain.KindExpense, Amount: 150, Description: "Supplement stock purchase", Reference: uuid.NewString(), Date: days(-10)},
		{Kind: domain.KindIncome, Amount: 7, Description: "Bottled water sale", Reference: uuid.NewString(), Date: days(-5), ClientID: &clientIDs[4]},
		{Kind: domain.KindIncome, Amount: 25, Description: "Day pass", Reference: uuid.NewString(), Date: days(-2)},
		{Kind: domain.KindExpense, Amount: 240, Description: "Cancellation refund", Reference: uuid.NewString(), Date: months(-4), ClientID: &clientIDs[4], ContractID: &contractIDs[5]},
	}
	if _, err := insertAll(ctx, db.Collection("transactions"), toAny(misc)...); err != nil {
		return err
	}

	return nil
}

func insertAll(ctx context.Context, coll *mongo.Collection, docs ...any) ([]primitive.ObjectID, error) {
	result, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(result.InsertedIDs))
	for i, id := range result.InsertedIDs {
		ids[i] = id.(primitive.ObjectID)
	}
	return ids, nil
}

func toAny[T any](items []T) []any {
	docs := make([]any, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}

func planName(plans []domain.TrainingPlan, ids []primitive.ObjectID, planID primitive.ObjectID) string {
	for i, id := range ids {
		if id == planID {
			return plans[i].Name
		}
	}
	return "Training plan"
}
