// Package payment normalizes the assembly's four payment methods onto
// one request/response contract. Mobile money and bank transfers go out
// to external providers through per-provider adapters; card and cash are
// settled synthetically. The service is the single place where failures
// are caught: ProcessPayment always returns a PaymentResponse, never an
// error, and CheckPaymentStatus returns nil only when the status is
// genuinely unknown (which callers must not read as "failed").
package payment

import (
	"context"
	"fmt"
	"log"
	"time"

	"mmdapay/internal/config"
)

// Service is the payment router's public contract.
type Service interface {
	ProcessPayment(ctx context.Context, req PaymentRequest) *PaymentResponse
	CheckPaymentStatus(ctx context.Context, transactionID string, method Method, providerHint string) *PaymentResponse
	GetPaymentMethods() map[string]MethodDescriptor
}

type service struct {
	momo    map[string]*momoAdapter
	banks   map[string]*bankAdapter
	metrics MetricsCollector
}

// NewService builds the router and one adapter per provider from the
// injected credential set. Adapters are stateless aside from their
// config and circuit breaker, so they are shared across requests.
func NewService(cfg *config.PaymentConfig, metrics MetricsCollector) Service {
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		momo: map[string]*momoAdapter{
			ProviderMTN:        newMomoAdapter(momoProviders[ProviderMTN], cfg.MTN, cfg.General),
			ProviderVodafone:   newMomoAdapter(momoProviders[ProviderVodafone], cfg.Vodafone, cfg.General),
			ProviderAirtelTigo: newMomoAdapter(momoProviders[ProviderAirtelTigo], cfg.AirtelTigo, cfg.General),
		},
		banks: map[string]*bankAdapter{
			ProviderGhIPSS: newBankAdapter(bankProviders[ProviderGhIPSS], cfg.GhIPSS, cfg.General),
			ProviderGCB:    newBankAdapter(bankProviders[ProviderGCB], cfg.GCB, cfg.General),
		},
		metrics: metrics,
	}
}

// ProcessPayment validates the method-specific fields and dispatches to
// the adapter for the request's method. Every failure path, including a
// panic anywhere below, is converted into a failed-shaped response.
func (s *service) ProcessPayment(ctx context.Context, req PaymentRequest) (resp *PaymentResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("payment processing panic for %s: %v", req.Reference, r)
			s.metrics.RecordError("process", "panic")
			resp = s.failed(req, fmt.Sprintf("payment processing failed: %v", r))
		}
	}()

	if req.Amount <= 0 {
		s.metrics.RecordError("process", "validation")
		return s.failed(req, ErrInvalidAmount.Error())
	}
	if req.Reference == "" {
		s.metrics.RecordError("process", "validation")
		return s.failed(req, ErrMissingReference.Error())
	}

	s.metrics.RecordInitiation(string(req.Method), req.MobileMoneyProvider)

	switch req.Method {
	case MethodMobileMoney:
		resp = s.processMobileMoney(ctx, req)
	case MethodBankTransfer:
		resp = s.processBankTransfer(ctx, req)
	case MethodCard:
		resp = s.normalize(req, processCard(req), "card", nil)
	case MethodCash:
		resp = s.normalize(req, processCash(req), "cash", map[string]interface{}{
			"requiresVerification": true,
		})
	default:
		s.metrics.RecordError("process", "unsupported_method")
		return s.failed(req, ErrUnsupportedMethod.Error())
	}

	result := "failed"
	if resp.Success {
		result = "initiated"
	}
	s.metrics.RecordOutcome(string(req.Method), resp.ProviderKey, result)
	return resp
}

func (s *service) processMobileMoney(ctx context.Context, req PaymentRequest) *PaymentResponse {
	if req.Phone == "" || req.MobileMoneyProvider == "" {
		s.metrics.RecordError("process", "validation")
		return s.failed(req, ErrMissingMomoFields.Error())
	}

	adapter, ok := s.momo[req.MobileMoneyProvider]
	if !ok {
		s.metrics.RecordError("process", "unknown_provider")
		return s.failed(req, ErrUnknownProvider.Error()+": "+req.MobileMoneyProvider)
	}

	start := time.Now()
	pr := adapter.initiatePayment(ctx, momoCharge{
		Phone:       req.Phone,
		Amount:      req.Amount,
		Reference:   req.Reference,
		Description: req.Description,
		CallbackURL: req.CallbackURL,
	})
	s.metrics.RecordProviderLatency(adapter.provider.key, time.Since(start))

	resp := s.normalize(req, pr, adapter.provider.key, map[string]interface{}{
		"phone":    req.Phone,
		"provider": req.MobileMoneyProvider,
	})
	return resp
}

func (s *service) processBankTransfer(ctx context.Context, req PaymentRequest) *PaymentResponse {
	if req.BeneficiaryAccount == "" || req.BeneficiaryBank == "" || req.BeneficiaryName == "" {
		s.metrics.RecordError("process", "validation")
		return s.failed(req, ErrMissingBankFields.Error())
	}

	provider := bankProviderForCode(req.BeneficiaryBank)
	adapter := s.banks[provider.key]

	start := time.Now()
	pr := adapter.initiateTransfer(ctx, bankTransfer{
		BeneficiaryAccount: req.BeneficiaryAccount,
		BeneficiaryBank:    req.BeneficiaryBank,
		BeneficiaryName:    req.BeneficiaryName,
		Amount:             req.Amount,
		Reference:          req.Reference,
		Description:        req.Description,
		CallbackURL:        req.CallbackURL,
	})
	s.metrics.RecordProviderLatency(provider.key, time.Since(start))

	return s.normalize(req, pr, provider.key, map[string]interface{}{
		"beneficiary_bank": req.BeneficiaryBank,
	})
}

// CheckPaymentStatus routes a status query back to the adapter that can
// answer it. providerHint is the adapter key recorded when the payment
// was initiated and is always preferred; prefix inference on the
// transaction id is the legacy fallback for mobile money, and bank
// queries without a hint go through GhIPSS. A nil return means the
// status is unknown, not that the payment failed.
func (s *service) CheckPaymentStatus(ctx context.Context, transactionID string, method Method, providerHint string) (resp *PaymentResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("status check panic for %s: %v", transactionID, r)
			s.metrics.RecordError("status", "panic")
			resp = nil
		}
	}()

	switch method {
	case MethodMobileMoney:
		provider, ok := momoProviders[providerHint]
		if !ok {
			provider = inferMomoProvider(transactionID)
		}
		s.metrics.RecordStatusCheck(string(method), provider.key)
		pr := s.momo[provider.key].checkPaymentStatus(ctx, transactionID)
		return s.normalizeStatus(pr, method, provider.key)

	case MethodBankTransfer:
		key := ProviderGhIPSS
		if providerHint == ProviderGCB {
			key = ProviderGCB
		}
		s.metrics.RecordStatusCheck(string(method), key)
		pr := s.banks[key].checkTransferStatus(ctx, transactionID)
		return s.normalizeStatus(pr, method, key)

	case MethodCard, MethodCash:
		// No real status source exists for synthetic settlements.
		s.metrics.RecordStatusCheck(string(method), string(method))
		simulatedDelay(100 * time.Millisecond)
		return &PaymentResponse{
			Success:       true,
			TransactionID: transactionID,
			Status:        StatusSuccess,
			Message:       "Payment completed successfully",
			Method:        method,
		}

	default:
		s.metrics.RecordError("status", "unsupported_method")
		return nil
	}
}

// GetPaymentMethods returns the static method catalog for client
// display. The fee descriptions are the published schedule; the fee a
// live payment carries always comes from the adapter response.
func (s *service) GetPaymentMethods() map[string]MethodDescriptor {
	return map[string]MethodDescriptor{
		string(MethodMobileMoney): {
			Name:           "Mobile Money",
			Description:    "Pay with MTN Mobile Money, Vodafone Cash or AirtelTigo Money",
			Providers:      []string{ProviderMTN, ProviderVodafone, ProviderAirtelTigo},
			Fees:           "Network charges apply (typically 0.75% - 1%)",
			ProcessingTime: "Instant to 5 minutes",
		},
		string(MethodBankTransfer): {
			Name:           "Bank Transfer",
			Description:    "Direct transfer to the assembly's collection account",
			Banks:          []string{"GCB Bank (002)", "Any GhIPSS member bank"},
			Fees:           "GHS 1.00 flat (absorbed by some banks)",
			ProcessingTime: "15 minutes to one business day",
		},
		string(MethodCard): {
			Name:           "Card Payment",
			Description:    "Pay with a Visa or Mastercard debit/credit card",
			Fees:           "2.5% processing fee",
			ProcessingTime: "Instant",
		},
		string(MethodCash): {
			Name:           "Cash",
			Description:    "Pay cash at the revenue office; requires officer verification",
			Fees:           "No fee",
			ProcessingTime: "Verified within one business day",
		},
	}
}

// normalize repackages an adapter response into the unified shape,
// merging caller metadata with method-specific metadata. TotalAmount is
// taken as amount + adapter fee and never re-derived elsewhere.
func (s *service) normalize(req PaymentRequest, pr ProviderResponse, providerKey string, extra map[string]interface{}) *PaymentResponse {
	metadata := make(map[string]interface{}, len(req.Metadata)+len(extra))
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	for k, v := range extra {
		metadata[k] = v
	}
	if len(metadata) == 0 {
		metadata = nil
	}

	return &PaymentResponse{
		Success:                 pr.Success,
		TransactionID:           pr.TransactionID,
		Reference:               pr.Reference,
		Status:                  pr.Status,
		Message:                 pr.Message,
		Method:                  req.Method,
		Provider:                pr.Provider,
		ProviderKey:             providerKey,
		Amount:                  pr.Amount,
		Fee:                     pr.Fee,
		TotalAmount:             pr.Amount + pr.Fee,
		EstimatedSettlementTime: pr.EstimatedSettlementTime,
		Metadata:                metadata,
	}
}

func (s *service) normalizeStatus(pr ProviderResponse, method Method, providerKey string) *PaymentResponse {
	return &PaymentResponse{
		Success:       pr.Success,
		TransactionID: pr.TransactionID,
		Reference:     pr.Reference,
		Status:        pr.Status,
		Message:       pr.Message,
		Method:        method,
		Provider:      pr.Provider,
		ProviderKey:   providerKey,
		Amount:        pr.Amount,
		Fee:           pr.Fee,
		TotalAmount:   pr.Amount + pr.Fee,
	}
}

// failed builds the failure shape every rejected request resolves to.
func (s *service) failed(req PaymentRequest, message string) *PaymentResponse {
	return &PaymentResponse{
		Success:     false,
		Reference:   req.Reference,
		Status:      StatusFailed,
		Message:     message,
		Method:      req.Method,
		Amount:      req.Amount,
		TotalAmount: req.Amount,
	}
}
