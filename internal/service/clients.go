package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

// ClientUpdateResult reports a client edit. ContractsCancelled is nonzero
// only when the edit deactivated the client and the cascade ran.
type ClientUpdateResult struct {
	ClientID           primitive.ObjectID
	Deactivated        bool
	ContractsCancelled int64
}

// ClientService manages the client roster. Deactivating a client cancels
// all of their active contracts in the same atomic unit as the client
// update; any other edit is a plain single-document write.
type ClientService interface {
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	Update(ctx context.Context, id primitive.ObjectID, update domain.ClientUpdate) (*ClientUpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type clientService struct {
	clientRepo   repository.ClientRepository
	contractRepo repository.ContractRepository
	runner       TxRunner
	logger       *zap.Logger
}

func NewClientService(
	clientRepo repository.ClientRepository,
	contractRepo repository.ContractRepository,
	runner TxRunner,
	logger *zap.Logger,
) ClientService {
	return &clientService{
		clientRepo:   clientRepo,
		contractRepo: contractRepo,
		runner:       runner,
		logger:       logger,
	}
}

func (s *clientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clientRepo.GetAll(ctx)
}

func (s *clientService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, id primitive.ObjectID, update domain.ClientUpdate) (*ClientUpdateResult, error) {
	existing, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	merged, err := domain.MergeClient(existing, update)
	if err != nil {
		return nil, err
	}

	deactivating := existing.Active && !merged.Active
	result := ClientUpdateResult{ClientID: id, Deactivated: deactivating}

	if !deactivating {
		if err := s.clientRepo.Update(ctx, merged); err != nil {
			return nil, err
		}
		return &result, nil
	}

	err = runAtomically(ctx, s.runner, func(ctx context.Context) error {
		if err := s.clientRepo.Update(ctx, merged); err != nil {
			return fmt.Errorf("update client: %w", err)
		}
		cancelled, err := s.contractRepo.CancelActiveByClient(ctx, id)
		if err != nil {
			return fmt.Errorf("cancel active contracts: %w", err)
		}
		result.ContractsCancelled = cancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client deactivated",
		zap.String("clientId", id.Hex()),
		zap.Int64("contractsCancelled", result.ContractsCancelled),
	)
	return &result, nil
}

func (s *clientService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.clientRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}
