package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mmdapay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Synthetic settlement delays are irrelevant to the suite.
	simulatedDelay = func(time.Duration) {}
}

// newTestService points every provider at the given handler and counts
// how many outbound calls were made.
func newTestService(t *testing.T, handler http.HandlerFunc) (Service, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if handler != nil {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transaction_id": "TX-TEST",
			"fee":            1.5,
		})
	}))
	t.Cleanup(srv.Close)

	provider := config.ProviderConfig{
		APIKey:     "test-key",
		MerchantID: "test-merchant",
		BaseURL:    srv.URL,
	}
	cfg := &config.PaymentConfig{
		MTN:        provider,
		Vodafone:   provider,
		AirtelTigo: provider,
		GhIPSS:     provider,
		GCB:        provider,
		General:    config.GeneralPaymentConfig{CallbackURL: "https://example.test/callback"},
	}
	return NewService(cfg, nil), &calls
}

func TestProcessPayment_MobileMoney(t *testing.T) {
	t.Run("successful initiation", func(t *testing.T) {
		svc, calls := newTestService(t, nil)

		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount:              100,
			Reference:           "R1",
			Description:         "property rate 2026",
			Method:              MethodMobileMoney,
			Phone:               "0244123456",
			MobileMoneyProvider: ProviderMTN,
			Metadata:            map[string]interface{}{"parcel": "GA-123"},
		})

		require.NotNil(t, resp)
		assert.True(t, resp.Success)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, "TX-TEST", resp.TransactionID)
		assert.Equal(t, "MTN Mobile Money", resp.Provider)
		assert.Equal(t, ProviderMTN, resp.ProviderKey)
		assert.Equal(t, 101.5, resp.TotalAmount)
		assert.Equal(t, int32(1), calls.Load())

		// caller metadata merged with method metadata
		assert.Equal(t, "GA-123", resp.Metadata["parcel"])
		assert.Equal(t, "0244123456", resp.Metadata["phone"])
		assert.Equal(t, ProviderMTN, resp.Metadata["provider"])
	})

	t.Run("missing fields rejected before any network call", func(t *testing.T) {
		svc, calls := newTestService(t, nil)

		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount:    100,
			Reference: "R1",
			Method:    MethodMobileMoney,
			// phone and provider deliberately absent
		})

		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Equal(t, StatusFailed, resp.Status)
		assert.Contains(t, resp.Message, "phone")
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("unknown provider key rejected", func(t *testing.T) {
		svc, calls := newTestService(t, nil)

		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount:              100,
			Reference:           "R1",
			Method:              MethodMobileMoney,
			Phone:               "0244123456",
			MobileMoneyProvider: "zeepay",
		})

		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "unknown mobile money provider")
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("provider failure surfaces as failed response, not error", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"message": "wallet suspended"})
		})

		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount:              100,
			Reference:           "R1",
			Method:              MethodMobileMoney,
			Phone:               "0244123456",
			MobileMoneyProvider: ProviderVodafone,
		})

		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Equal(t, StatusFailed, resp.Status)
		assert.Contains(t, resp.Message, "wallet suspended")
	})
}

func TestProcessPayment_BankRouting(t *testing.T) {
	tests := []struct {
		name         string
		bankCode     string
		wantProvider string
		wantKey      string
	}{
		{"code 002 routes to GCB", "002", "GCB Bank", ProviderGCB},
		{"code 007 routes to GhIPSS", "007", "GhIPSS Instant Pay", ProviderGhIPSS},
		{"unknown code routes to GhIPSS", "999", "GhIPSS Instant Pay", ProviderGhIPSS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, nil)

			resp := svc.ProcessPayment(context.Background(), PaymentRequest{
				Amount:             100,
				Reference:          "R1",
				Description:        "d",
				Method:             MethodBankTransfer,
				BeneficiaryAccount: "123",
				BeneficiaryBank:    tt.bankCode,
				BeneficiaryName:    "X",
			})

			require.NotNil(t, resp)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.wantProvider, resp.Provider)
			assert.Equal(t, tt.wantKey, resp.ProviderKey)
			assert.NotEmpty(t, resp.EstimatedSettlementTime)
		})
	}

	t.Run("missing beneficiary fields rejected before dispatch", func(t *testing.T) {
		svc, calls := newTestService(t, nil)

		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount:          100,
			Reference:       "R1",
			Method:          MethodBankTransfer,
			BeneficiaryBank: "002",
		})

		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "beneficiary")
		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestProcessPayment_Card(t *testing.T) {
	svc, calls := newTestService(t, nil)

	resp := svc.ProcessPayment(context.Background(), PaymentRequest{
		Amount:         200,
		Reference:      "R2",
		Description:    "d",
		Method:         MethodCard,
		CardNumber:     "4111111111111111",
		CardExpiry:     "12/30",
		CardCVV:        "123",
		CardHolderName: "Jane Doe",
	})

	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, 5.0, resp.Fee)
	assert.Equal(t, 205.0, resp.TotalAmount)
	assert.Regexp(t, "^CARD_", resp.TransactionID)
	assert.Equal(t, int32(0), calls.Load(), "card settlement is synthetic")

	t.Run("missing card fields fail fast", func(t *testing.T) {
		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount:     200,
			Reference:  "R2",
			Method:     MethodCard,
			CardNumber: "4111111111111111",
		})
		assert.False(t, resp.Success)
		assert.Equal(t, StatusFailed, resp.Status)
		assert.Empty(t, resp.TransactionID)
	})
}

func TestProcessPayment_Cash(t *testing.T) {
	svc, calls := newTestService(t, nil)

	resp := svc.ProcessPayment(context.Background(), PaymentRequest{
		Amount:      50,
		Reference:   "R3",
		Description: "d",
		Method:      MethodCash,
	})

	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Zero(t, resp.Fee)
	assert.Equal(t, 50.0, resp.TotalAmount)
	assert.Regexp(t, "^CASH_", resp.TransactionID)
	assert.Equal(t, true, resp.Metadata["requiresVerification"])
	assert.Equal(t, int32(0), calls.Load())
}

func TestProcessPayment_Validation(t *testing.T) {
	svc, _ := newTestService(t, nil)

	t.Run("unsupported method", func(t *testing.T) {
		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount:    10,
			Reference: "R1",
			Method:    Method("barter"),
		})
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "unsupported payment method")
	})

	t.Run("non-positive amount", func(t *testing.T) {
		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount:    0,
			Reference: "R1",
			Method:    MethodCash,
		})
		assert.False(t, resp.Success)
		assert.Equal(t, StatusFailed, resp.Status)
	})

	t.Run("missing reference", func(t *testing.T) {
		resp := svc.ProcessPayment(context.Background(), PaymentRequest{
			Amount: 10,
			Method: MethodCash,
		})
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "reference")
	})
}

func TestTotalAmountInvariant(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transaction_id": "TX-1",
			"fee":            2.25,
		})
	})

	requests := []PaymentRequest{
		{Amount: 100, Reference: "A", Method: MethodMobileMoney, Phone: "024", MobileMoneyProvider: ProviderMTN},
		{Amount: 75.5, Reference: "B", Method: MethodBankTransfer, BeneficiaryAccount: "1", BeneficiaryBank: "007", BeneficiaryName: "N"},
		{Amount: 200, Reference: "C", Method: MethodCard, CardNumber: "4", CardExpiry: "1", CardCVV: "1", CardHolderName: "n"},
		{Amount: 50, Reference: "D", Method: MethodCash},
	}

	for _, req := range requests {
		resp := svc.ProcessPayment(context.Background(), req)
		require.NotNil(t, resp)
		assert.InDelta(t, resp.Amount+resp.Fee, resp.TotalAmount, 1e-9,
			"total must equal amount + fee for %s", req.Method)
	}
}

func TestCheckPaymentStatus(t *testing.T) {
	t.Run("provider hint is preferred over prefix inference", func(t *testing.T) {
		var gotPath string
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "completed"})
		})

		// id looks like MTN but the recorded provider is vodafone
		resp := svc.CheckPaymentStatus(context.Background(), "MTN12345", MethodMobileMoney, ProviderVodafone)
		require.NotNil(t, resp)
		assert.Equal(t, "Vodafone Cash", resp.Provider)
		assert.Equal(t, StatusSuccess, resp.Status)
		assert.Equal(t, "/payments/MTN12345", gotPath)
	})

	t.Run("prefix inference fallback", func(t *testing.T) {
		// Known-fragile heuristic: the id prefix stands in for the
		// provider when no hint was recorded.
		tests := []struct {
			id   string
			want string
		}{
			{"MTN12345", "MTN Mobile Money"},
			{"V-9", "Vodafone Cash"},
			{"ATL-1", "AirtelTigo Money"},
			{"xyz", "MTN Mobile Money"}, // no recognizable prefix defaults to MTN
		}

		for _, tt := range tests {
			svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{"status": "PENDING"})
			})
			resp := svc.CheckPaymentStatus(context.Background(), tt.id, MethodMobileMoney, "")
			require.NotNil(t, resp, tt.id)
			assert.Equal(t, tt.want, resp.Provider, tt.id)
		}
	})

	t.Run("bank status defaults to GhIPSS without a hint", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "SETTLED"})
		})

		resp := svc.CheckPaymentStatus(context.Background(), "GIP-1", MethodBankTransfer, "")
		require.NotNil(t, resp)
		assert.Equal(t, "GhIPSS Instant Pay", resp.Provider)
		assert.Equal(t, StatusSuccess, resp.Status)
	})

	t.Run("bank status honors a GCB hint", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "POSTED"})
		})

		resp := svc.CheckPaymentStatus(context.Background(), "GCB-1", MethodBankTransfer, ProviderGCB)
		require.NotNil(t, resp)
		assert.Equal(t, "GCB Bank", resp.Provider)
		assert.Equal(t, StatusSuccess, resp.Status)
	})

	t.Run("card and cash report synthetic success", func(t *testing.T) {
		svc, calls := newTestService(t, nil)

		for _, method := range []Method{MethodCard, MethodCash} {
			resp := svc.CheckPaymentStatus(context.Background(), "CARD_X", method, "")
			require.NotNil(t, resp)
			assert.True(t, resp.Success)
			assert.Equal(t, StatusSuccess, resp.Status)
		}
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("unknown method yields status unknown", func(t *testing.T) {
		svc, _ := newTestService(t, nil)
		resp := svc.CheckPaymentStatus(context.Background(), "X", Method("barter"), "")
		assert.Nil(t, resp)
	})

	t.Run("lookup failure is a failed response with zeroed amounts", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "transaction not found"})
		})

		resp := svc.CheckPaymentStatus(context.Background(), "MTN-GONE", MethodMobileMoney, ProviderMTN)
		require.NotNil(t, resp)
		assert.False(t, resp.Success)
		assert.Equal(t, StatusFailed, resp.Status)
		assert.Zero(t, resp.Amount)
		assert.Zero(t, resp.TotalAmount)
		assert.Contains(t, resp.Message, "transaction not found")
	})
}

func TestGetPaymentMethods(t *testing.T) {
	svc, calls := newTestService(t, nil)

	first := svc.GetPaymentMethods()
	second := svc.GetPaymentMethods()

	assert.Equal(t, first, second, "catalog must be a pure function of static config")
	assert.Equal(t, int32(0), calls.Load())

	require.Contains(t, first, string(MethodMobileMoney))
	assert.ElementsMatch(t,
		[]string{ProviderMTN, ProviderVodafone, ProviderAirtelTigo},
		first[string(MethodMobileMoney)].Providers)
}
