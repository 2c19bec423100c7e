package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
)

// In-memory repository fakes backed by a shared snapshot/restore
// transaction runner, so the atomicity of the workflows is observable:
// when a write inside a transaction fails, every prior write of that
// transaction must vanish.

type snapshotter interface {
	snapshot() any
	restore(any)
}

type fakeTxRunner struct {
	stores []snapshotter
	calls  int
}

func newFakeTxRunner(stores ...snapshotter) *fakeTxRunner {
	return &fakeTxRunner{stores: stores}
}

func (r *fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	snaps := make([]any, len(r.stores))
	for i, s := range r.stores {
		snaps[i] = s.snapshot()
	}
	if err := fn(ctx); err != nil {
		for i, s := range r.stores {
			s.restore(snaps[i])
		}
		return err
	}
	return nil
}

var _ TxRunner = (*fakeTxRunner)(nil)

// --- clients ---

type fakeClientRepo struct {
	clients map[primitive.ObjectID]domain.Client
	failUpd error
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[primitive.ObjectID]domain.Client)}
}

func (f *fakeClientRepo) snapshot() any {
	cp := make(map[primitive.ObjectID]domain.Client, len(f.clients))
	for k, v := range f.clients {
		cp[k] = v
	}
	return cp
}

func (f *fakeClientRepo) restore(s any) { f.clients = s.(map[primitive.ObjectID]domain.Client) }

func (f *fakeClientRepo) Create(_ context.Context, client *domain.Client) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *client
	stored.ID = id
	f.clients[id] = stored
	return id, nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeClientRepo) GetAll(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientRepo) Update(_ context.Context, client *domain.Client) error {
	if f.failUpd != nil {
		return f.failUpd
	}
	if _, ok := f.clients[client.ID]; !ok {
		return repository.ErrNotFound
	}
	f.clients[client.ID] = *client
	return nil
}

func (f *fakeClientRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.clients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

// --- training plans ---

type fakePlanRepo struct {
	plans map[primitive.ObjectID]domain.TrainingPlan
}

var _ repository.TrainingPlanRepository = (*fakePlanRepo)(nil)

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]domain.TrainingPlan)}
}

func (f *fakePlanRepo) add(plan domain.TrainingPlan) primitive.ObjectID {
	id := primitive.NewObjectID()
	plan.ID = id
	f.plans[id] = plan
	return id
}

func (f *fakePlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	return f.add(*plan), nil
}

func (f *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakePlanRepo) GetAll(_ context.Context) ([]domain.TrainingPlan, error) {
	out := make([]domain.TrainingPlan, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlanRepo) Update(_ context.Context, plan *domain.TrainingPlan) error {
	if _, ok := f.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	f.plans[plan.ID] = *plan
	return nil
}

func (f *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

// --- trainers ---

type fakeTrainerRepo struct {
	trainers []domain.Trainer
}

var _ repository.TrainerRepository = (*fakeTrainerRepo)(nil)

func (f *fakeTrainerRepo) Create(_ context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	stored := *trainer
	stored.ID = primitive.NewObjectID()
	f.trainers = append(f.trainers, stored)
	return stored.ID, nil
}

func (f *fakeTrainerRepo) GetAll(_ context.Context) ([]domain.Trainer, error) {
	return append([]domain.Trainer(nil), f.trainers...), nil
}

// --- contracts ---

type fakeContractRepo struct {
	contracts map[primitive.ObjectID]domain.Contract
	order     []primitive.ObjectID

	// optional, for ActiveEligibleForNutrition
	nutrition *fakeNutritionRepo

	failCreate error
	failStatus error
	failCancel error
}

var _ repository.ContractRepository = (*fakeContractRepo)(nil)

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: make(map[primitive.ObjectID]domain.Contract)}
}

type contractSnapshot struct {
	contracts map[primitive.ObjectID]domain.Contract
	order     []primitive.ObjectID
}

func (f *fakeContractRepo) snapshot() any {
	cp := make(map[primitive.ObjectID]domain.Contract, len(f.contracts))
	for k, v := range f.contracts {
		cp[k] = v
	}
	return contractSnapshot{contracts: cp, order: append([]primitive.ObjectID(nil), f.order...)}
}

func (f *fakeContractRepo) restore(s any) {
	snap := s.(contractSnapshot)
	f.contracts, f.order = snap.contracts, snap.order
}

func (f *fakeContractRepo) add(contract domain.Contract) primitive.ObjectID {
	id := primitive.NewObjectID()
	contract.ID = id
	f.contracts[id] = contract
	f.order = append(f.order, id)
	return id
}

func (f *fakeContractRepo) Create(_ context.Context, contract *domain.Contract) (primitive.ObjectID, error) {
	if f.failCreate != nil {
		return primitive.NilObjectID, f.failCreate
	}
	return f.add(*contract), nil
}

func (f *fakeContractRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeContractRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.ContractStatus) error {
	if f.failStatus != nil {
		return f.failStatus
	}
	c, ok := f.contracts[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = status
	f.contracts[id] = c
	return nil
}

func (f *fakeContractRepo) UpdateManyStatus(_ context.Context, ids []primitive.ObjectID, status domain.ContractStatus) (int64, error) {
	var modified int64
	for _, id := range ids {
		c, ok := f.contracts[id]
		if !ok || c.Status == status {
			continue
		}
		c.Status = status
		f.contracts[id] = c
		modified++
	}
	return modified, nil
}

func (f *fakeContractRepo) CancelActiveByClient(_ context.Context, clientID primitive.ObjectID) (int64, error) {
	if f.failCancel != nil {
		return 0, f.failCancel
	}
	var cancelled int64
	for id, c := range f.contracts {
		if c.ClientID == clientID && c.Status == domain.ContractActive {
			c.Status = domain.ContractCancelled
			f.contracts[id] = c
			cancelled++
		}
	}
	return cancelled, nil
}

func (f *fakeContractRepo) withInfo(filter func(domain.Contract) bool) []repository.ContractWithInfo {
	var out []repository.ContractWithInfo
	for _, id := range f.order {
		c := f.contracts[id]
		if filter(c) {
			out = append(out, repository.ContractWithInfo{Contract: c})
		}
	}
	return out
}

func (f *fakeContractRepo) AllWithInfo(_ context.Context) ([]repository.ContractWithInfo, error) {
	return f.withInfo(func(domain.Contract) bool { return true }), nil
}

func (f *fakeContractRepo) ActiveWithInfo(_ context.Context) ([]repository.ContractWithInfo, error) {
	return f.withInfo(func(c domain.Contract) bool { return c.Status == domain.ContractActive }), nil
}

func (f *fakeContractRepo) RenewableWithInfo(_ context.Context) ([]repository.ContractWithInfo, error) {
	return f.withInfo(func(c domain.Contract) bool { return c.Status.Renewable() }), nil
}

func (f *fakeContractRepo) ExpiredActiveWithInfo(_ context.Context) ([]repository.ContractWithInfo, error) {
	now := time.Now().UTC()
	return f.withInfo(func(c domain.Contract) bool {
		return c.Status == domain.ContractActive && c.EndDate.Before(now)
	}), nil
}

func (f *fakeContractRepo) ByClientWithInfo(_ context.Context, clientID primitive.ObjectID) ([]repository.ContractWithInfo, error) {
	return f.withInfo(func(c domain.Contract) bool { return c.ClientID == clientID }), nil
}

func (f *fakeContractRepo) ActiveEligibleForNutrition(_ context.Context, startOfDay time.Time) ([]repository.ContractWithInfo, error) {
	return f.withInfo(func(c domain.Contract) bool {
		if c.Status != domain.ContractActive {
			return false
		}
		if f.nutrition == nil {
			return true
		}
		for _, p := range f.nutrition.plans {
			if p.ContractID == c.ID && !p.RegisteredAt.Before(startOfDay) {
				return false
			}
		}
		return true
	}), nil
}

// --- transactions ---

type fakeTxnRepo struct {
	txns       []domain.Transaction
	failCreate error
}

var _ repository.TransactionRepository = (*fakeTxnRepo)(nil)

func newFakeTxnRepo() *fakeTxnRepo { return &fakeTxnRepo{} }

func (f *fakeTxnRepo) snapshot() any { return append([]domain.Transaction(nil), f.txns...) }

func (f *fakeTxnRepo) restore(s any) { f.txns = s.([]domain.Transaction) }

func (f *fakeTxnRepo) Create(_ context.Context, txn *domain.Transaction) (primitive.ObjectID, error) {
	if f.failCreate != nil {
		return primitive.NilObjectID, f.failCreate
	}
	stored := *txn
	stored.ID = primitive.NewObjectID()
	f.txns = append(f.txns, stored)
	return stored.ID, nil
}

func (f *fakeTxnRepo) GetBalance(_ context.Context, filter repository.BalanceFilter) (repository.Balance, error) {
	var b repository.Balance
	for _, t := range f.txns {
		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.Date.After(*filter.To) {
			continue
		}
		if filter.ClientID != nil && (t.ClientID == nil || *t.ClientID != *filter.ClientID) {
			continue
		}
		switch t.Kind {
		case domain.KindIncome:
			b.Income += t.Amount
		case domain.KindExpense:
			b.Expense += t.Amount
		}
	}
	return b, nil
}

func (f *fakeTxnRepo) GetByClient(_ context.Context, clientID primitive.ObjectID) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range f.txns {
		if t.ClientID != nil && *t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out, nil
}

// byContract returns the stored transactions referencing the contract.
func (f *fakeTxnRepo) byContract(contractID primitive.ObjectID) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range f.txns {
		if t.ContractID != nil && *t.ContractID == contractID {
			out = append(out, t)
		}
	}
	return out
}

// --- nutrition plans ---

type fakeNutritionRepo struct {
	plans      map[primitive.ObjectID]domain.NutritionPlan
	contracts  *fakeContractRepo
	failCreate error
}

var _ repository.NutritionPlanRepository = (*fakeNutritionRepo)(nil)

func newFakeNutritionRepo() *fakeNutritionRepo {
	return &fakeNutritionRepo{plans: make(map[primitive.ObjectID]domain.NutritionPlan)}
}

func (f *fakeNutritionRepo) snapshot() any {
	cp := make(map[primitive.ObjectID]domain.NutritionPlan, len(f.plans))
	for k, v := range f.plans {
		cp[k] = v
	}
	return cp
}

func (f *fakeNutritionRepo) restore(s any) {
	f.plans = s.(map[primitive.ObjectID]domain.NutritionPlan)
}

func (f *fakeNutritionRepo) Create(_ context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error) {
	if f.failCreate != nil {
		return primitive.NilObjectID, f.failCreate
	}
	id := primitive.NewObjectID()
	stored := *plan
	stored.ID = id
	f.plans[id] = stored
	return id, nil
}

func (f *fakeNutritionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakeNutritionRepo) GetByContract(_ context.Context, contractID primitive.ObjectID) ([]domain.NutritionPlan, error) {
	var out []domain.NutritionPlan
	for _, p := range f.plans {
		if p.ContractID == contractID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeNutritionRepo) ByClientWithInfo(_ context.Context, clientID primitive.ObjectID) ([]repository.NutritionPlanWithInfo, error) {
	var out []repository.NutritionPlanWithInfo
	for _, p := range f.plans {
		if f.contracts == nil {
			continue
		}
		contract, ok := f.contracts.contracts[p.ContractID]
		if !ok || contract.ClientID != clientID {
			continue
		}
		out = append(out, repository.NutritionPlanWithInfo{NutritionPlan: p, Contract: contract})
	}
	return out, nil
}

func (f *fakeNutritionRepo) Update(_ context.Context, plan *domain.NutritionPlan) error {
	if _, ok := f.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	f.plans[plan.ID] = *plan
	return nil
}

func (f *fakeNutritionRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

// --- progress records ---

type fakeProgressRepo struct {
	records map[primitive.ObjectID]domain.ProgressRecord
	order   []primitive.ObjectID
}

var _ repository.ProgressRepository = (*fakeProgressRepo)(nil)

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[primitive.ObjectID]domain.ProgressRecord)}
}

func (f *fakeProgressRepo) Create(_ context.Context, record *domain.ProgressRecord) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *record
	stored.ID = id
	f.records[id] = stored
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeProgressRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgressRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeProgressRepo) GetByContract(_ context.Context, contractID primitive.ObjectID) ([]domain.ProgressRecord, error) {
	var out []domain.ProgressRecord
	for _, id := range f.order {
		if r := f.records[id]; r.ContractID == contractID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.ProgressStatus) error {
	r, ok := f.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Status = status
	f.records[id] = r
	return nil
}

func (f *fakeProgressRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	f.order = removeID(f.order, id)
	return nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// --- object storage ---

type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/upload/%s?type=%s", objectKey, contentType), nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}
