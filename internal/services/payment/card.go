package payment

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardFeeRate is the flat processing fee applied to card payments.
const CardFeeRate = 0.025

// processCard settles a card payment synthetically. No card processor
// is integrated; the handler validates the card fields, applies the
// flat fee and reports immediate success.
func processCard(req PaymentRequest) ProviderResponse {
	if req.CardNumber == "" || req.CardExpiry == "" || req.CardCVV == "" || req.CardHolderName == "" {
		return ProviderResponse{
			Success:   false,
			Status:    StatusFailed,
			Reference: req.Reference,
			Message:   ErrMissingCardFields.Error(),
			Provider:  "Card Payment",
			Amount:    req.Amount,
		}
	}

	simulatedDelay(200 * time.Millisecond)

	fee := req.Amount * CardFeeRate
	txID := "CARD_" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	log.Printf("card payment settled for %s (transaction %s)", req.Reference, txID)

	return ProviderResponse{
		Success:       true,
		TransactionID: txID,
		Reference:     req.Reference,
		Status:        StatusSuccess,
		Message:       "Card payment processed successfully",
		Provider:      "Card Payment",
		Amount:        req.Amount,
		Fee:           fee,
	}
}
