package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

func TestRecordIncomeAndExpense(t *testing.T) {
	txns := newFakeTxnRepo()
	svc := NewFinanceService(txns)
	ctx := context.Background()

	_, err := svc.RecordIncome(ctx, StandaloneTransactionInput{Amount: 25, Description: "Day pass"})
	require.NoError(t, err)
	_, err = svc.RecordExpense(ctx, StandaloneTransactionInput{Amount: 350, Description: "Facility rent"})
	require.NoError(t, err)

	require.Len(t, txns.txns, 2)
	assert.Equal(t, domain.KindIncome, txns.txns[0].Kind)
	assert.Nil(t, txns.txns[0].ClientID)
	assert.Nil(t, txns.txns[0].ContractID)
	assert.NotEmpty(t, txns.txns[0].Reference)
	assert.Equal(t, domain.KindExpense, txns.txns[1].Kind)
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	svc := NewFinanceService(newFakeTxnRepo())

	_, err := svc.RecordIncome(context.Background(), StandaloneTransactionInput{Amount: -5, Description: ""})
	assert.Error(t, err)
}

func TestBalance(t *testing.T) {
	txns := newFakeTxnRepo()
	svc := NewFinanceService(txns)
	ctx := context.Background()

	clientID := primitive.NewObjectID()
	now := time.Now().UTC()
	seed := []domain.Transaction{
		{Kind: domain.KindIncome, Amount: 250, Date: now.AddDate(0, 0, -20), ClientID: &clientID},
		{Kind: domain.KindIncome, Amount: 25, Date: now.AddDate(0, 0, -2)},
		{Kind: domain.KindExpense, Amount: 350, Date: now.AddDate(0, 0, -20)},
		{Kind: domain.KindExpense, Amount: 240, Date: now.AddDate(0, -4, 0), ClientID: &clientID},
	}
	for i := range seed {
		_, err := txns.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	balance, err := svc.Balance(ctx, repository.BalanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 275.0, balance.Income)
	assert.Equal(t, 590.0, balance.Expense)
	assert.Equal(t, -315.0, balance.Net())

	from := now.AddDate(0, 0, -30)
	balance, err = svc.Balance(ctx, repository.BalanceFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, 275.0, balance.Income)
	assert.Equal(t, 350.0, balance.Expense, "the old refund falls outside the range")

	balance, err = svc.Balance(ctx, repository.BalanceFilter{ClientID: &clientID})
	require.NoError(t, err)
	assert.Equal(t, 250.0, balance.Income)
	assert.Equal(t, 240.0, balance.Expense)
	assert.Equal(t, 10.0, balance.Net())
}

func TestClientStatement(t *testing.T) {
	txns := newFakeTxnRepo()
	svc := NewFinanceService(txns)
	ctx := context.Background()

	clientID := primitive.NewObjectID()
	_, err := svc.RecordIncome(ctx, StandaloneTransactionInput{Amount: 7, Description: "Bottled water sale", ClientID: &clientID})
	require.NoError(t, err)
	_, err = svc.RecordIncome(ctx, StandaloneTransactionInput{Amount: 25, Description: "Day pass"})
	require.NoError(t, err)

	statement, err := svc.ClientStatement(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, statement, 1)
	assert.Equal(t, "Bottled water sale", statement[0].Description)
}
