package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

// StandaloneTransactionInput records money movement outside any workflow:
// walk-in income, rent, equipment. Both references are optional.
type StandaloneTransactionInput struct {
	Amount      float64
	Description string
	ClientID    *primitive.ObjectID
	ContractID  *primitive.ObjectID
}

// FinanceService records standalone transactions and answers balance
// queries. Transactions created by the contract workflows do not pass
// through here.
type FinanceService interface {
	RecordIncome(ctx context.Context, input StandaloneTransactionInput) (primitive.ObjectID, error)
	RecordExpense(ctx context.Context, input StandaloneTransactionInput) (primitive.ObjectID, error)
	// Balance returns income/expense totals over the filtered subset;
	// Balance.Net() is the net result.
	Balance(ctx context.Context, filter repository.BalanceFilter) (repository.Balance, error)
	// ClientStatement lists one client's transactions chronologically.
	ClientStatement(ctx context.Context, clientID primitive.ObjectID) ([]domain.Transaction, error)
}

type financeService struct {
	txnRepo repository.TransactionRepository
}

func NewFinanceService(txnRepo repository.TransactionRepository) FinanceService {
	return &financeService{txnRepo: txnRepo}
}

func (s *financeService) RecordIncome(ctx context.Context, input StandaloneTransactionInput) (primitive.ObjectID, error) {
	return s.record(ctx, domain.KindIncome, input)
}

func (s *financeService) RecordExpense(ctx context.Context, input StandaloneTransactionInput) (primitive.ObjectID, error) {
	return s.record(ctx, domain.KindExpense, input)
}

func (s *financeService) record(ctx context.Context, kind domain.TransactionKind, input StandaloneTransactionInput) (primitive.ObjectID, error) {
	txn, err := domain.NewTransaction(domain.TransactionSpec{
		ContractID:  input.ContractID,
		ClientID:    input.ClientID,
		Kind:        kind,
		Amount:      input.Amount,
		Description: input.Description,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return s.txnRepo.Create(ctx, txn)
}

func (s *financeService) Balance(ctx context.Context, filter repository.BalanceFilter) (repository.Balance, error) {
	return s.txnRepo.GetBalance(ctx, filter)
}

func (s *financeService) ClientStatement(ctx context.Context, clientID primitive.ObjectID) ([]domain.Transaction, error) {
	return s.txnRepo.GetByClient(ctx, clientID)
}
