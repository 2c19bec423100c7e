package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gymops/gym-manager/internal/config"
	"gymops/gym-manager/internal/repository/mongo"
	"gymops/gym-manager/internal/service"
	"gymops/gym-manager/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("db", cfg.Database.Name))

	// Schema validators back up the factory-level validation on every write.
	schemaCtx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	if err := mongo.EnsureSchemas(schemaCtx, appDB); err != nil {
		cancel()
		logger.Fatal("failed to ensure collection schemas", zap.Error(err))
	}
	cancel()

	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	clientRepo := mongo.NewMongoClientRepository(appDB)
	planRepo := mongo.NewMongoTrainingPlanRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	contractRepo := mongo.NewMongoContractRepository(appDB)
	txnRepo := mongo.NewMongoTransactionRepository(appDB)
	nutritionRepo := mongo.NewMongoNutritionPlanRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)

	runner := mongo.NewTxnRunner(dbClient)

	sh := &shell{
		enrollment: service.NewEnrollmentService(clientRepo, planRepo, contractRepo, txnRepo, nutritionRepo, runner, logger),
		contracts:  service.NewContractService(contractRepo, planRepo, txnRepo, runner, logger),
		clients:    service.NewClientService(clientRepo, contractRepo, runner, logger),
		catalog:    service.NewCatalogService(planRepo, trainerRepo),
		finance:    service.NewFinanceService(txnRepo),
		nutrition:  service.NewNutritionService(nutritionRepo, contractRepo),
		progress:   service.NewProgressService(progressRepo, contractRepo, fileStorage),
	}
	sh.run(context.Background())
}
