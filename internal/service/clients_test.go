package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"gymops/gym-manager/internal/domain"
)

type clientFixture struct {
	clients   *fakeClientRepo
	contracts *fakeContractRepo
	runner    *fakeTxRunner
	svc       ClientService
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()
	f := &clientFixture{
		clients:   newFakeClientRepo(),
		contracts: newFakeContractRepo(),
	}
	f.runner = newFakeTxRunner(f.clients, f.contracts)
	f.svc = NewClientService(f.clients, f.contracts, f.runner, zap.NewNop())
	return f
}

func (f *clientFixture) addClient(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	client, err := domain.NewClient(name, "someone@email.com", "3101234567")
	require.NoError(t, err)
	id, err := f.clients.Create(context.Background(), client)
	require.NoError(t, err)
	return id
}

func (f *clientFixture) addContract(clientID primitive.ObjectID, status domain.ContractStatus) primitive.ObjectID {
	now := time.Now().UTC()
	return f.contracts.add(domain.Contract{
		ClientID:  clientID,
		PlanID:    primitive.NewObjectID(),
		StartDate: now.AddDate(0, 0, -5),
		EndDate:   now.AddDate(0, 0, 25),
		Price:     120,
		Status:    status,
	})
}

func TestClientUpdatePlainEdit(t *testing.T) {
	f := newClientFixture(t)
	id := f.addClient(t, "John Price")
	f.addContract(id, domain.ContractActive)

	newPhone := "3199999999"
	result, err := f.svc.Update(context.Background(), id, domain.ClientUpdate{Phone: &newPhone})
	require.NoError(t, err)
	assert.False(t, result.Deactivated)
	assert.Zero(t, result.ContractsCancelled)
	assert.Zero(t, f.runner.calls, "a plain edit is a single-document write, no transaction")

	client, err := f.clients.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "3199999999", client.Phone)
	assert.True(t, client.Active)
}

func TestClientDeactivationCancelsActiveContracts(t *testing.T) {
	f := newClientFixture(t)
	id := f.addClient(t, "John Price")
	active1 := f.addContract(id, domain.ContractActive)
	active2 := f.addContract(id, domain.ContractActive)
	finalized := f.addContract(id, domain.ContractFinalized)

	otherID := f.addClient(t, "Mary Rogers")
	otherActive := f.addContract(otherID, domain.ContractActive)

	inactive := false
	result, err := f.svc.Update(context.Background(), id, domain.ClientUpdate{Active: &inactive})
	require.NoError(t, err)
	assert.True(t, result.Deactivated)
	assert.Equal(t, int64(2), result.ContractsCancelled)
	assert.Equal(t, 1, f.runner.calls)

	client, err := f.clients.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, client.Active)

	for _, cid := range []primitive.ObjectID{active1, active2} {
		c, err := f.contracts.GetByID(context.Background(), cid)
		require.NoError(t, err)
		assert.Equal(t, domain.ContractCancelled, c.Status)
	}

	c, err := f.contracts.GetByID(context.Background(), finalized)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractFinalized, c.Status, "only active contracts are cancelled")

	c, err = f.contracts.GetByID(context.Background(), otherActive)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractActive, c.Status, "other clients' contracts are untouched")
}

func TestClientDeactivationRollsBackOnCascadeFailure(t *testing.T) {
	f := newClientFixture(t)
	id := f.addClient(t, "John Price")
	contractID := f.addContract(id, domain.ContractActive)
	f.contracts.failCancel = errors.New("write conflict")

	inactive := false
	_, err := f.svc.Update(context.Background(), id, domain.ClientUpdate{Active: &inactive})
	require.ErrorIs(t, err, ErrTransactionFailed)

	client, err := f.clients.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, client.Active, "the client edit must not survive the aborted cascade")

	c, err := f.contracts.GetByID(context.Background(), contractID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractActive, c.Status)
}

func TestClientReactivationDoesNotCascade(t *testing.T) {
	f := newClientFixture(t)
	id := f.addClient(t, "Valerie Moore")

	inactive := false
	_, err := f.svc.Update(context.Background(), id, domain.ClientUpdate{Active: &inactive})
	require.NoError(t, err)

	active := true
	result, err := f.svc.Update(context.Background(), id, domain.ClientUpdate{Active: &active})
	require.NoError(t, err)
	assert.False(t, result.Deactivated)
}

func TestClientUpdateUnknown(t *testing.T) {
	f := newClientFixture(t)

	name := "Nobody"
	_, err := f.svc.Update(context.Background(), primitive.NewObjectID(), domain.ClientUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientDelete(t *testing.T) {
	f := newClientFixture(t)
	id := f.addClient(t, "John Price")

	require.NoError(t, f.svc.Delete(context.Background(), id))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), id), ErrClientNotFound)
}
