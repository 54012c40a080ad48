package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mmdapay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMomoAdapter(t *testing.T, key string, handler http.HandlerFunc) *momoAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return newMomoAdapter(momoProviders[key],
		config.ProviderConfig{APIKey: "k", MerchantID: "m", BaseURL: srv.URL},
		config.GeneralPaymentConfig{CallbackURL: "https://example.test/cb"})
}

func TestMomoAdapter_InitiatePayment(t *testing.T) {
	t.Run("sends auth headers and wire fields", func(t *testing.T) {
		var gotBody map[string]interface{}
		var gotAuth, gotMerchant string
		adapter := newTestMomoAdapter(t, ProviderMTN, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotMerchant = r.Header.Get("X-Merchant-Id")
			json.NewDecoder(r.Body).Decode(&gotBody)
			json.NewEncoder(w).Encode(map[string]interface{}{"transaction_id": "MTN-1", "fee": 0.75})
		})

		resp := adapter.initiatePayment(context.Background(), momoCharge{
			Phone:       "0244123456",
			Amount:      120,
			Reference:   "R1",
			Description: "business operating permit",
		})

		assert.Equal(t, "Bearer k", gotAuth)
		assert.Equal(t, "m", gotMerchant)
		assert.Equal(t, "0244123456", gotBody["phone"])
		assert.Equal(t, "GHS", gotBody["currency"])
		assert.Equal(t, "https://example.test/cb", gotBody["callback_url"], "falls back to general callback")

		assert.True(t, resp.Success)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, "MTN-1", resp.TransactionID)
		assert.Equal(t, 0.75, resp.Fee)
		assert.Equal(t, 120.0, resp.Amount)
	})

	t.Run("explicit callback overrides the default", func(t *testing.T) {
		var gotBody map[string]interface{}
		adapter := newTestMomoAdapter(t, ProviderMTN, func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotBody)
			json.NewEncoder(w).Encode(map[string]interface{}{"transaction_id": "MTN-2"})
		})

		adapter.initiatePayment(context.Background(), momoCharge{
			Phone: "024", Amount: 1, Reference: "R", CallbackURL: "https://caller.test/hook",
		})
		assert.Equal(t, "https://caller.test/hook", gotBody["callback_url"])
	})

	t.Run("missing fee treated as zero", func(t *testing.T) {
		adapter := newTestMomoAdapter(t, ProviderVodafone, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"transaction_id": "VOD-1"})
		})

		resp := adapter.initiatePayment(context.Background(), momoCharge{Phone: "020", Amount: 10, Reference: "R"})
		assert.True(t, resp.Success)
		assert.Zero(t, resp.Fee)
	})

	t.Run("non-numeric fee treated as zero", func(t *testing.T) {
		adapter := newTestMomoAdapter(t, ProviderVodafone, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"transaction_id": "VOD-2", "fee": "0.75"})
		})

		resp := adapter.initiatePayment(context.Background(), momoCharge{Phone: "020", Amount: 10, Reference: "R"})
		assert.True(t, resp.Success)
		assert.Zero(t, resp.Fee)
	})

	t.Run("non-2xx becomes a failed response carrying the provider message", func(t *testing.T) {
		adapter := newTestMomoAdapter(t, ProviderAirtelTigo, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"error": "subscriber opted out"})
		})

		resp := adapter.initiatePayment(context.Background(), momoCharge{Phone: "027", Amount: 10, Reference: "R"})
		assert.False(t, resp.Success)
		assert.Equal(t, StatusFailed, resp.Status)
		assert.Contains(t, resp.Message, "subscriber opted out")
		assert.Equal(t, "AirtelTigo Money", resp.Provider)
	})

	t.Run("unreachable provider becomes a failed response", func(t *testing.T) {
		adapter := newMomoAdapter(momoProviders[ProviderMTN],
			config.ProviderConfig{BaseURL: "http://127.0.0.1:1"},
			config.GeneralPaymentConfig{})

		resp := adapter.initiatePayment(context.Background(), momoCharge{Phone: "024", Amount: 10, Reference: "R"})
		assert.False(t, resp.Success)
		assert.Equal(t, StatusFailed, resp.Status)
		assert.NotEmpty(t, resp.Message)
	})
}

func TestMomoAdapter_CheckPaymentStatus(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		native string
		want   Status
	}{
		{"mtn pending", ProviderMTN, "PENDING", StatusPending},
		{"mtn processing", ProviderMTN, "PROCESSING", StatusProcessing},
		{"mtn successful", ProviderMTN, "SUCCESSFUL", StatusSuccess},
		{"mtn cancelled", ProviderMTN, "CANCELLED", StatusFailed},
		{"vodafone completed", ProviderVodafone, "completed", StatusSuccess},
		{"vodafone rejected", ProviderVodafone, "rejected", StatusFailed},
		{"airteltigo expired", ProviderAirtelTigo, "EXPIRED", StatusFailed},
		{"unknown value defaults to pending", ProviderMTN, "AWAITING_OTP", StatusPending},
		{"empty value defaults to pending", ProviderVodafone, "", StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := newTestMomoAdapter(t, tt.key, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"status": tt.native,
					"amount": 40.0,
					"fee":    0.4,
				})
			})

			resp := adapter.checkPaymentStatus(context.Background(), "TX-1")
			assert.Equal(t, tt.want, resp.Status)
			assert.Equal(t, tt.want != StatusFailed, resp.Success)
			assert.Equal(t, 40.0, resp.Amount)
		})
	}

	t.Run("lookup failure zeroes amounts", func(t *testing.T) {
		adapter := newTestMomoAdapter(t, ProviderMTN, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		resp := adapter.checkPaymentStatus(context.Background(), "TX-1")
		assert.False(t, resp.Success)
		assert.Equal(t, StatusFailed, resp.Status)
		assert.Zero(t, resp.Amount)
		assert.Zero(t, resp.Fee)
	})
}

func TestStatusMappingIsClosed(t *testing.T) {
	valid := map[Status]bool{
		StatusPending:    true,
		StatusProcessing: true,
		StatusSuccess:    true,
		StatusFailed:     true,
	}

	// every native value in every table, plus garbage, must land in the
	// closed 4-state set
	samples := []string{"", "GARBAGE", "success", "OK", "42"}

	for key, p := range momoProviders {
		for native := range p.statusMap {
			samples = append(samples, native)
		}
		for _, native := range samples {
			got := p.mapStatus(native)
			require.True(t, valid[got], "momo %s mapped %q to %q", key, native, got)
		}
	}
	for key, p := range bankProviders {
		for native := range p.statusMap {
			samples = append(samples, native)
		}
		for _, native := range samples {
			got := p.mapStatus(native)
			require.True(t, valid[got], "bank %s mapped %q to %q", key, native, got)
		}
	}
}

func TestInferMomoProvider(t *testing.T) {
	assert.Equal(t, ProviderMTN, inferMomoProvider("MTN12345").key)
	assert.Equal(t, ProviderMTN, inferMomoProvider("M-7").key)
	assert.Equal(t, ProviderVodafone, inferMomoProvider("VOD-1").key)
	assert.Equal(t, ProviderVodafone, inferMomoProvider("V-9").key)
	assert.Equal(t, ProviderAirtelTigo, inferMomoProvider("ATL-1").key)
	assert.Equal(t, ProviderAirtelTigo, inferMomoProvider("A77").key)
	assert.Equal(t, ProviderMTN, inferMomoProvider("xyz").key, "unrecognized prefix defaults to MTN")
}
