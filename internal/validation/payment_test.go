package validation

import (
	"testing"

	"mmdapay/internal/services/payment"

	"github.com/stretchr/testify/assert"
)

func TestPaymentValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        payment.PaymentRequest
		wantValid  bool
		wantFields []string
	}{
		{
			name: "valid mobile money",
			req: payment.PaymentRequest{
				Amount: 100, Reference: "R1", Method: payment.MethodMobileMoney,
				Phone: "0244123456", MobileMoneyProvider: "mtn",
			},
			wantValid: true,
		},
		{
			name: "mobile money with bad phone",
			req: payment.PaymentRequest{
				Amount: 100, Reference: "R1", Method: payment.MethodMobileMoney,
				Phone: "12345", MobileMoneyProvider: "mtn",
			},
			wantFields: []string{"phone"},
		},
		{
			name: "bank transfer missing beneficiary name",
			req: payment.PaymentRequest{
				Amount: 100, Reference: "R1", Method: payment.MethodBankTransfer,
				BeneficiaryAccount: "123", BeneficiaryBank: "002",
			},
			wantFields: []string{"beneficiary_name"},
		},
		{
			name: "card missing cvv",
			req: payment.PaymentRequest{
				Amount: 100, Reference: "R1", Method: payment.MethodCard,
				CardNumber: "4111111111111111", CardExpiry: "12/30", CardHolderName: "Jane Doe",
			},
			wantFields: []string{"card_cvv"},
		},
		{
			name:      "cash needs no extra fields",
			req:       payment.PaymentRequest{Amount: 50, Reference: "R3", Method: payment.MethodCash},
			wantValid: true,
		},
		{
			name:       "unknown method",
			req:        payment.PaymentRequest{Amount: 50, Reference: "R3", Method: "barter"},
			wantFields: []string{"payment_method"},
		},
		{
			name:       "zero amount",
			req:        payment.PaymentRequest{Reference: "R1", Method: payment.MethodCash},
			wantFields: []string{"amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Payment(&tt.req)

			assert.Equal(t, tt.wantValid, v.Valid())
			for _, field := range tt.wantFields {
				assert.Contains(t, v.Errors, field)
			}
		})
	}
}

func TestRegistrationValidation(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		v := New()
		v.Registration("Ama Mensah", "ama@example.com", "0244123456", "P0012345678", "s3cret!pass")
		assert.True(t, v.Valid(), "errors: %v", v.Errors)
	})

	t.Run("TIN optional but checked when present", func(t *testing.T) {
		v := New()
		v.Registration("Ama Mensah", "ama@example.com", "0244123456", "", "s3cret!pass")
		assert.True(t, v.Valid())

		v = New()
		v.Registration("Ama Mensah", "ama@example.com", "0244123456", "not-a-tin", "s3cret!pass")
		assert.Contains(t, v.Errors, "tin")
	})

	t.Run("weak password rejected", func(t *testing.T) {
		v := New()
		v.Registration("Ama Mensah", "ama@example.com", "0244123456", "", "short")
		assert.Contains(t, v.Errors, "password")
	})
}
