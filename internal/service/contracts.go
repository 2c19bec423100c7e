package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

// --- Error Definitions ---
var (
	ErrContractNotFound     = errors.New("contract not found")
	ErrContractNotActive    = errors.New("contract is not active")
	ErrContractNotRenewable = errors.New("contract is neither active nor finalized")
)

// CancelResult reports a contract cancellation.
type CancelResult struct {
	ContractID primitive.ObjectID
	RefundID   *primitive.ObjectID
	Refunded   float64
}

// RenewalResult reports a contract renewal.
type RenewalResult struct {
	PriorContractID primitive.ObjectID
	NewContractID   primitive.ObjectID
	TransactionID   primitive.ObjectID
	EndDate         time.Time
}

// FinalizeResult reports a bulk finalization. Modified may be lower than
// Matched: the update-many is atomic per document, not across documents.
type FinalizeResult struct {
	Matched  int
	Modified int64
}

// ContractService drives the contract lifecycle workflows and the joined
// listing queries the shell selects from.
type ContractService interface {
	// Cancel sets an active contract to cancelled and, when withRefund is
	// set, records an expense transaction of the contract's price, both
	// atomically.
	Cancel(ctx context.Context, contractID primitive.ObjectID, withRefund bool) (*CancelResult, error)
	// Renew closes an active or finalized contract with status renewed and
	// opens a linked successor contract plus its income transaction,
	// atomically.
	Renew(ctx context.Context, priorContractID primitive.ObjectID, newPrice float64, trainerID *primitive.ObjectID) (*RenewalResult, error)
	// FinalizeExpired transitions every active contract past its end date
	// to finalized in one update-many.
	FinalizeExpired(ctx context.Context) (*FinalizeResult, error)

	ListAll(ctx context.Context) ([]repository.ContractWithInfo, error)
	ListActive(ctx context.Context) ([]repository.ContractWithInfo, error)
	ListRenewable(ctx context.Context) ([]repository.ContractWithInfo, error)
	ListExpired(ctx context.Context) ([]repository.ContractWithInfo, error)
	ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]repository.ContractWithInfo, error)
}

type contractService struct {
	contractRepo repository.ContractRepository
	planRepo     repository.TrainingPlanRepository
	txnRepo      repository.TransactionRepository
	runner       TxRunner
	logger       *zap.Logger
}

func NewContractService(
	contractRepo repository.ContractRepository,
	planRepo repository.TrainingPlanRepository,
	txnRepo repository.TransactionRepository,
	runner TxRunner,
	logger *zap.Logger,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		planRepo:     planRepo,
		txnRepo:      txnRepo,
		runner:       runner,
		logger:       logger,
	}
}

func (s *contractService) Cancel(ctx context.Context, contractID primitive.ObjectID, withRefund bool) (*CancelResult, error) {
	contract, err := s.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	if contract.Status != domain.ContractActive {
		return nil, ErrContractNotActive
	}

	result := CancelResult{ContractID: contract.ID}
	err = runAtomically(ctx, s.runner, func(ctx context.Context) error {
		if err := s.contractRepo.UpdateStatus(ctx, contract.ID, domain.ContractCancelled); err != nil {
			return fmt.Errorf("cancel contract: %w", err)
		}
		if !withRefund {
			return nil
		}
		refund, err := domain.NewTransaction(domain.TransactionSpec{
			ContractID:  &contract.ID,
			ClientID:    &contract.ClientID,
			Kind:        domain.KindExpense,
			Amount:      contract.Price,
			Description: "Cancellation refund",
		})
		if err != nil {
			return err
		}
		refundID, err := s.txnRepo.Create(ctx, refund)
		if err != nil {
			return fmt.Errorf("create refund: %w", err)
		}
		result.RefundID = &refundID
		result.Refunded = contract.Price
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contract cancelled",
		zap.String("contractId", contract.ID.Hex()),
		zap.Bool("refund", withRefund),
	)
	return &result, nil
}

func (s *contractService) Renew(ctx context.Context, priorContractID primitive.ObjectID, newPrice float64, trainerID *primitive.ObjectID) (*RenewalResult, error) {
	prior, err := s.contractRepo.GetByID(ctx, priorContractID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	if !prior.Status.Renewable() {
		return nil, ErrContractNotRenewable
	}
	// Duration comes from the plan as priced today, not from the prior
	// contract's dates.
	plan, err := s.planRepo.GetByID(ctx, prior.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	result := RenewalResult{PriorContractID: prior.ID}
	err = runAtomically(ctx, s.runner, func(ctx context.Context) error {
		if err := s.contractRepo.UpdateStatus(ctx, prior.ID, domain.ContractRenewed); err != nil {
			return fmt.Errorf("close prior contract: %w", err)
		}

		successor, err := domain.NewContract(domain.ContractSpec{
			ClientID:         prior.ClientID,
			PlanID:           prior.PlanID,
			TrainerID:        trainerID,
			Price:            newPrice,
			DurationDays:     plan.DurationDays,
			RenewsContractID: &prior.ID,
		})
		if err != nil {
			return err
		}
		newID, err := s.contractRepo.Create(ctx, successor)
		if err != nil {
			return fmt.Errorf("create successor contract: %w", err)
		}
		result.NewContractID = newID
		result.EndDate = successor.EndDate

		payment, err := domain.NewTransaction(domain.TransactionSpec{
			ContractID:  &newID,
			ClientID:    &prior.ClientID,
			Kind:        domain.KindIncome,
			Amount:      newPrice,
			Description: fmt.Sprintf("Renewal payment - %s", plan.Name),
		})
		if err != nil {
			return err
		}
		txnID, err := s.txnRepo.Create(ctx, payment)
		if err != nil {
			return fmt.Errorf("create renewal payment: %w", err)
		}
		result.TransactionID = txnID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contract renewed",
		zap.String("priorContractId", prior.ID.Hex()),
		zap.String("newContractId", result.NewContractID.Hex()),
		zap.Float64("price", newPrice),
	)
	return &result, nil
}

// FinalizeExpired is deliberately not wrapped in a multi-document
// transaction: a single update-many on one collection, reported by
// modified count.
func (s *contractService) FinalizeExpired(ctx context.Context) (*FinalizeResult, error) {
	expired, err := s.contractRepo.ExpiredActiveWithInfo(ctx)
	if err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return &FinalizeResult{}, nil
	}
	ids := make([]primitive.ObjectID, len(expired))
	for i, c := range expired {
		ids[i] = c.Contract.ID
	}
	modified, err := s.contractRepo.UpdateManyStatus(ctx, ids, domain.ContractFinalized)
	if err != nil {
		return nil, err
	}
	s.logger.Info("expired contracts finalized",
		zap.Int("matched", len(ids)),
		zap.Int64("modified", modified),
	)
	return &FinalizeResult{Matched: len(ids), Modified: modified}, nil
}

func (s *contractService) ListAll(ctx context.Context) ([]repository.ContractWithInfo, error) {
	return s.contractRepo.AllWithInfo(ctx)
}

func (s *contractService) ListActive(ctx context.Context) ([]repository.ContractWithInfo, error) {
	return s.contractRepo.ActiveWithInfo(ctx)
}

func (s *contractService) ListRenewable(ctx context.Context) ([]repository.ContractWithInfo, error) {
	return s.contractRepo.RenewableWithInfo(ctx)
}

func (s *contractService) ListExpired(ctx context.Context) ([]repository.ContractWithInfo, error) {
	return s.contractRepo.ExpiredActiveWithInfo(ctx)
}

func (s *contractService) ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]repository.ContractWithInfo, error) {
	return s.contractRepo.ByClientWithInfo(ctx, clientID)
}
