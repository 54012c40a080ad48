package payment

import (
	"log"
	"strings"

	"github.com/google/uuid"
)

// processCash records a cash payment intent. The payment stays pending
// until a revenue officer confirms receipt of the physical cash, which
// the requiresVerification metadata flag signals to the caller.
func processCash(req PaymentRequest) ProviderResponse {
	txID := "CASH_" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	log.Printf("cash payment recorded for %s (transaction %s), awaiting verification", req.Reference, txID)

	return ProviderResponse{
		Success:       true,
		TransactionID: txID,
		Reference:     req.Reference,
		Status:        StatusPending,
		Message:       "Cash payment recorded. Present payment at the revenue office for verification.",
		Provider:      "Cash",
		Amount:        req.Amount,
		Fee:           0,
	}
}
