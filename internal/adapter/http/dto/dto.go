package dto

// RegisterRequest is the request body for owner registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for owner login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	OwnerID  string `json:"owner_id"`
	Username string `json:"username"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// AmountRequest carries a single positive value amount. Used by deposit,
// withdraw, stake, unstake and spend authorization.
type AmountRequest struct {
	Amount uint64 `json:"amount" binding:"required,gt=0"`
}

// MerchantRegisterRequest is the request body for merchant registration.
type MerchantRegisterRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// PaymentRequest is the request body for settling a payment.
type PaymentRequest struct {
	MerchantID  string `json:"merchant_id" binding:"required,uuid"`
	Destination string `json:"destination,omitempty" binding:"omitempty,uuid"`
	Amount      uint64 `json:"amount" binding:"required,gt=0"`
	ReferenceID string `json:"reference_id,omitempty" binding:"omitempty,max=100,safe_id"`
}

// VaultResponse is the response body for vault state.
type VaultResponse struct {
	Address   string `json:"address"`
	OwnerID   string `json:"owner_id"`
	Balance   uint64 `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TreasuryResponse is the response body for the shared treasury pool.
type TreasuryResponse struct {
	Address   string `json:"address"`
	Balance   uint64 `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// YieldAccountResponse is the response body for a yield account.
type YieldAccountResponse struct {
	Address      string `json:"address"`
	OwnerID      string `json:"owner_id"`
	StakedAmount uint64 `json:"staked_amount"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// SpendingAccountResponse is the response body for a spending account.
type SpendingAccountResponse struct {
	Address       string `json:"address"`
	OwnerID       string `json:"owner_id"`
	SpendingLimit uint64 `json:"spending_limit"`
	AmountSpent   uint64 `json:"amount_spent"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// MerchantResponse is the response body for a merchant account.
type MerchantResponse struct {
	Address   string `json:"address"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
