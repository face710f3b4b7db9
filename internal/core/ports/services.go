package ports

import (
	"context"
	"time"

	"collateral-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// PriceOracle fetches a validated price update for a fixed asset-pair feed.
// Implementations never cache: every call fetches fresh.
type PriceOracle interface {
	// GetPrice fails when the freshest update for feedID is older than
	// maxAge or does not belong to feedID.
	GetPrice(ctx context.Context, feedID string, maxAge time.Duration) (*domain.PriceSnapshot, error)
}

// TransferRequest describes one external value movement.
type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
	Memo   string `json:"memo,omitempty"`
}

// SettlementBridge moves native value between external funding addresses.
// A bridge failure must abort the surrounding ledger transaction.
type SettlementBridge interface {
	Transfer(ctx context.Context, req TransferRequest) error
}

// IdempotencyCache stores settlement responses keyed by reference.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RateLimitStore implements fixed-window request counting.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// TokenClaims are the validated contents of a session token.
type TokenClaims struct {
	OwnerID  uuid.UUID
	Username string
}

// TokenService issues and validates session tokens carrying the owner
// identity used as the authorization context of every ledger call.
type TokenService interface {
	Generate(ownerID uuid.UUID, username string) (string, time.Time, error)
	Validate(token string) (*TokenClaims, error)
}

// HashService hashes and verifies owner passwords.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, encodedHash string) (bool, error)
}

// AuthService registers owners and issues session tokens.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}

// VaultService covers vault lifecycle and the deposit/withdraw flows.
type VaultService interface {
	Initialize(ctx context.Context, ownerID uuid.UUID) (*domain.Vault, error)
	Get(ctx context.Context, ownerID uuid.UUID) (*domain.Vault, error)
	Deposit(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.Vault, error)
	Withdraw(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.Vault, error)
}

// StakingService covers treasury/yield lifecycle and the stake/unstake flows.
type StakingService interface {
	InitializeTreasury(ctx context.Context) (*domain.Treasury, error)
	InitializeYieldAccount(ctx context.Context, ownerID uuid.UUID) (*domain.YieldAccount, error)
	Stake(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.YieldAccount, error)
	Unstake(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.YieldAccount, error)
}

// SpendingService enforces the spending-limit ledger.
type SpendingService interface {
	InitializeSpendingAccount(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error)
	UpdateSpendingLimit(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error)
	AuthorizeSpend(ctx context.Context, ownerID uuid.UUID, amount uint64) (*domain.SpendingAccount, error)
	ResetSpendTracker(ctx context.Context, ownerID uuid.UUID) (*domain.SpendingAccount, error)
}

// PositionReport is the read-only collateral evaluation of one owner.
type PositionReport struct {
	OwnerID          uuid.UUID             `json:"owner_id"`
	StakedAmount     uint64                `json:"staked_amount"`
	StakedValueCents uint64                `json:"staked_value_cents"`
	AmountSpentCents uint64                `json:"amount_spent_cents"`
	CollateralRatio  uint64                `json:"collateral_ratio"`
	Healthy          bool                  `json:"healthy"`
	StakedValueUSD   string                `json:"staked_value_usd"`
	DebtUSD          string                `json:"debt_usd"`
	Price            *domain.PriceSnapshot `json:"price"`
}

// LiquidationReport describes the outcome of one engine evaluation.
type LiquidationReport struct {
	OwnerID         uuid.UUID `json:"owner_id"`
	Liquidated      bool      `json:"liquidated"`
	RatioBefore     uint64    `json:"ratio_before"`
	RatioAfter      uint64    `json:"ratio_after"`
	UnitsLiquidated uint64    `json:"units_liquidated"`
	DebtRepaidCents uint64    `json:"debt_repaid_cents"`
}

// CollateralService is the collateral accounting and liquidation engine.
type CollateralService interface {
	Position(ctx context.Context, ownerID uuid.UUID) (*PositionReport, error)
	Liquidate(ctx context.Context, ownerID uuid.UUID) (*LiquidationReport, error)
}

// PaymentRequest is one settlement attempt against a spending account.
// Destination, when supplied by the caller, must equal the merchant
// record's stored authority; anything else is rejected.
type PaymentRequest struct {
	OwnerID     uuid.UUID
	MerchantID  uuid.UUID
	Destination string
	Amount      uint64
	ReferenceID string
}

// PaymentReceipt is the settled outcome returned to the caller.
type PaymentReceipt struct {
	ReferenceID  string    `json:"reference_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	MerchantID   uuid.UUID `json:"merchant_id"`
	MerchantName string    `json:"merchant_name"`
	Amount       uint64    `json:"amount"`
	AmountSpent  uint64    `json:"amount_spent"`
	SettledAt    time.Time `json:"settled_at"`
}

// PaymentService registers merchants and settles payments.
type PaymentService interface {
	RegisterMerchant(ctx context.Context, authority uuid.UUID, name string) (*domain.MerchantAccount, error)
	ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error)
}
