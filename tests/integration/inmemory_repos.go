package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"collateral-ledger/internal/core/domain"
	"collateral-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return fmt.Errorf("username already exists")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *inMemoryUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// --- In-Memory Vault Repo ---

type inMemoryVaultRepo struct {
	mu     sync.RWMutex
	vaults map[string]*domain.Vault // keyed by address
}

func newInMemoryVaultRepo() *inMemoryVaultRepo {
	return &inMemoryVaultRepo{vaults: make(map[string]*domain.Vault)}
}

func (r *inMemoryVaultRepo) Create(ctx context.Context, v *domain.Vault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vaults[v.Address]; ok {
		return fmt.Errorf("vault already exists")
	}
	cp := *v
	r.vaults[v.Address] = &cp
	return nil
}

func (r *inMemoryVaultRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.vaults {
		if v.OwnerID == ownerID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryVaultRepo) GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Vault, error) {
	return r.GetByOwner(ctx, ownerID)
}

func (r *inMemoryVaultRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, address string, balance uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vaults[address]
	if !ok {
		return fmt.Errorf("vault not found")
	}
	v.Balance = balance
	v.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Treasury Repo ---

type inMemoryTreasuryRepo struct {
	mu       sync.RWMutex
	treasury *domain.Treasury
}

func newInMemoryTreasuryRepo() *inMemoryTreasuryRepo {
	return &inMemoryTreasuryRepo{}
}

func (r *inMemoryTreasuryRepo) Create(ctx context.Context, t *domain.Treasury) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.treasury != nil {
		return fmt.Errorf("treasury already exists")
	}
	cp := *t
	r.treasury = &cp
	return nil
}

func (r *inMemoryTreasuryRepo) Get(ctx context.Context) (*domain.Treasury, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.treasury == nil {
		return nil, nil
	}
	cp := *r.treasury
	return &cp, nil
}

func (r *inMemoryTreasuryRepo) GetForUpdate(ctx context.Context, tx pgx.Tx) (*domain.Treasury, error) {
	return r.Get(ctx)
}

func (r *inMemoryTreasuryRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, address string, balance uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.treasury == nil || r.treasury.Address != address {
		return fmt.Errorf("treasury not found")
	}
	r.treasury.Balance = balance
	r.treasury.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Yield Account Repo ---

type inMemoryYieldRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.YieldAccount
}

func newInMemoryYieldRepo() *inMemoryYieldRepo {
	return &inMemoryYieldRepo{accounts: make(map[string]*domain.YieldAccount)}
}

func (r *inMemoryYieldRepo) Create(ctx context.Context, a *domain.YieldAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.Address]; ok {
		return fmt.Errorf("yield account already exists")
	}
	cp := *a
	r.accounts[a.Address] = &cp
	return nil
}

func (r *inMemoryYieldRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.YieldAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.OwnerID == ownerID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryYieldRepo) GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.YieldAccount, error) {
	return r.GetByOwner(ctx, ownerID)
}

func (r *inMemoryYieldRepo) UpdateStakedAmount(ctx context.Context, tx pgx.Tx, address string, stakedAmount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[address]
	if !ok {
		return fmt.Errorf("yield account not found")
	}
	a.StakedAmount = stakedAmount
	a.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Spending Account Repo ---

type inMemorySpendingRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.SpendingAccount
}

func newInMemorySpendingRepo() *inMemorySpendingRepo {
	return &inMemorySpendingRepo{accounts: make(map[string]*domain.SpendingAccount)}
}

func (r *inMemorySpendingRepo) Create(ctx context.Context, a *domain.SpendingAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.Address]; ok {
		return fmt.Errorf("spending account already exists")
	}
	cp := *a
	r.accounts[a.Address] = &cp
	return nil
}

func (r *inMemorySpendingRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.OwnerID == ownerID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemorySpendingRepo) GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.SpendingAccount, error) {
	return r.GetByOwner(ctx, ownerID)
}

func (r *inMemorySpendingRepo) UpdateLimit(ctx context.Context, tx pgx.Tx, address string, spendingLimit uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[address]
	if !ok {
		return fmt.Errorf("spending account not found")
	}
	a.SpendingLimit = spendingLimit
	a.UpdatedAt = time.Now()
	return nil
}

func (r *inMemorySpendingRepo) UpdateAmountSpent(ctx context.Context, tx pgx.Tx, address string, amountSpent uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[address]
	if !ok {
		return fmt.Errorf("spending account not found")
	}
	a.AmountSpent = amountSpent
	a.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Merchant Account Repo ---

type inMemoryMerchantRepo struct {
	mu        sync.RWMutex
	merchants map[string]*domain.MerchantAccount
}

func newInMemoryMerchantRepo() *inMemoryMerchantRepo {
	return &inMemoryMerchantRepo{merchants: make(map[string]*domain.MerchantAccount)}
}

func (r *inMemoryMerchantRepo) Create(ctx context.Context, m *domain.MerchantAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.merchants[m.Address]; ok {
		return fmt.Errorf("merchant account already exists")
	}
	cp := *m
	r.merchants[m.Address] = &cp
	return nil
}

func (r *inMemoryMerchantRepo) GetByAuthority(ctx context.Context, authority uuid.UUID) (*domain.MerchantAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.OwnerID == authority {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// --- Stub Price Oracle ---

// stubOracle serves a settable price as the freshest update for any feed.
// Setting the publish time in the past exercises the staleness rejection.
type stubOracle struct {
	mu          sync.RWMutex
	price       int64
	expo        int32
	publishedAt time.Time
}

func newStubOracle(price int64, expo int32) *stubOracle {
	return &stubOracle{price: price, expo: expo, publishedAt: time.Now()}
}

func (o *stubOracle) setPrice(price int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.price = price
	o.publishedAt = time.Now()
}

func (o *stubOracle) GetPrice(ctx context.Context, feedID string, maxAge time.Duration) (*domain.PriceSnapshot, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return &domain.PriceSnapshot{
		FeedID:      feedID,
		Price:       o.price,
		Conf:        1,
		Expo:        o.expo,
		PublishedAt: o.publishedAt,
	}, nil
}

// --- Recording Settlement Bridge ---

// recordingBridge captures transfers and optionally fails them, letting
// tests assert that a failed settlement leaves no ledger mutation behind.
type recordingBridge struct {
	mu        sync.Mutex
	transfers []ports.TransferRequest
	failNext  bool
}

func newRecordingBridge() *recordingBridge {
	return &recordingBridge{}
}

func (b *recordingBridge) Transfer(ctx context.Context, req ports.TransferRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failNext {
		b.failNext = false
		return fmt.Errorf("transfer service unavailable")
	}
	b.transfers = append(b.transfers, req)
	return nil
}

func (b *recordingBridge) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.transfers)
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
