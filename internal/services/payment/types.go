package payment

// Method is the closed set of payment methods the assembly accepts.
type Method string

const (
	MethodMobileMoney  Method = "mobile_money"
	MethodBankTransfer Method = "bank_transfer"
	MethodCard         Method = "card_payment"
	MethodCash         Method = "cash"
)

// Status is the normalized payment status. Every provider's native
// vocabulary maps onto exactly these four values.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// Mobile money provider keys
const (
	ProviderMTN        = "mtn"
	ProviderVodafone   = "vodafone"
	ProviderAirtelTigo = "airtelTigo"
)

// Bank adapter keys
const (
	ProviderGhIPSS = "ghipss"
	ProviderGCB    = "gcb"
)

// GCBBankCode is the clearing code that routes a transfer to the
// GCB-specific adapter; every other code goes through GhIPSS.
const GCBBankCode = "002"

// PaymentRequest is the normalized inbound request. Only the fields
// required by Method need to be set; the service rejects the request
// before dispatch when any of them is missing.
type PaymentRequest struct {
	Amount      float64 `json:"amount"`
	Reference   string  `json:"reference"`
	Description string  `json:"description"`
	Method      Method  `json:"payment_method"`

	// mobile_money
	Phone               string `json:"phone,omitempty"`
	MobileMoneyProvider string `json:"mobile_money_provider,omitempty"`

	// bank_transfer
	BeneficiaryAccount string `json:"beneficiary_account,omitempty"`
	BeneficiaryBank    string `json:"beneficiary_bank,omitempty"`
	BeneficiaryName    string `json:"beneficiary_name,omitempty"`

	// card_payment
	CardNumber     string `json:"card_number,omitempty"`
	CardExpiry     string `json:"card_expiry,omitempty"`
	CardCVV        string `json:"card_cvv,omitempty"`
	CardHolderName string `json:"card_holder_name,omitempty"`

	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// PaymentResponse is the one result shape every method resolves to.
// TotalAmount is always Amount + Fee, computed by the adapter.
type PaymentResponse struct {
	Success                 bool                   `json:"success"`
	TransactionID           string                 `json:"transaction_id,omitempty"`
	Reference               string                 `json:"reference"`
	Status                  Status                 `json:"status"`
	Message                 string                 `json:"message"`
	Method                  Method                 `json:"payment_method"`
	Provider                string                 `json:"provider,omitempty"`
	ProviderKey             string                 `json:"-"` // adapter key, persisted for status routing
	Amount                  float64                `json:"amount"`
	Fee                     float64                `json:"fee"`
	TotalAmount             float64                `json:"total_amount"`
	EstimatedSettlementTime string                 `json:"estimated_settlement_time,omitempty"`
	ReceiptURL              string                 `json:"receipt_url,omitempty"`
	Metadata                map[string]interface{} `json:"metadata,omitempty"`
}

// ProviderResponse is what an adapter hands back to the service. All
// failures are reported through Success/Status, never as an error.
type ProviderResponse struct {
	Success                 bool
	TransactionID           string
	Reference               string
	Status                  Status
	Message                 string
	Provider                string
	Amount                  float64
	Fee                     float64
	EstimatedSettlementTime string
}

// MethodDescriptor describes one payment method for client display.
// The fees here are the published schedule, not the fee a live adapter
// call will return.
type MethodDescriptor struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Providers      []string `json:"providers,omitempty"`
	Banks          []string `json:"banks,omitempty"`
	Fees           string   `json:"fees"`
	ProcessingTime string   `json:"processing_time"`
}
