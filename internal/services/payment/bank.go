package payment

import (
	"context"
	"log"

	"mmdapay/internal/config"
)

// bankProvider describes one transfer rail. GhIPSS is the interbank
// switch used for every bank the assembly has no direct integration
// with; GCB has its own corporate API.
type bankProvider struct {
	key                 string
	name                string
	transfersPath       string
	estimatedSettlement string
	statusMap           map[string]Status
}

var bankProviders = map[string]bankProvider{
	ProviderGhIPSS: {
		key:                 ProviderGhIPSS,
		name:                "GhIPSS Instant Pay",
		transfersPath:       "/transfers",
		estimatedSettlement: "Within 15 minutes",
		statusMap: map[string]Status{
			"ACK":        StatusPending,
			"PROCESSING": StatusProcessing,
			"SETTLED":    StatusSuccess,
			"RETURNED":   StatusFailed,
			"FAILED":     StatusFailed,
		},
	},
	ProviderGCB: {
		key:                 ProviderGCB,
		name:                "GCB Bank",
		transfersPath:       "/transfers",
		estimatedSettlement: "Same business day",
		statusMap: map[string]Status{
			"RECEIVED": StatusPending,
			"POSTING":  StatusProcessing,
			"POSTED":   StatusSuccess,
			"REJECTED": StatusFailed,
			"REVERSED": StatusFailed,
		},
	},
}

// mapStatus translates a native rail status onto the closed 4-state
// set; unknown values map to pending, never to failed.
func (p bankProvider) mapStatus(native string) Status {
	if s, ok := p.statusMap[native]; ok {
		return s
	}
	return StatusPending
}

// bankAdapter performs the wire calls for one transfer rail.
type bankAdapter struct {
	provider    bankProvider
	client      *providerClient
	callbackURL string
}

func newBankAdapter(provider bankProvider, cfg config.ProviderConfig, general config.GeneralPaymentConfig) *bankAdapter {
	return &bankAdapter{
		provider:    provider,
		client:      newProviderClient(provider.name, cfg),
		callbackURL: general.CallbackURL,
	}
}

// bankTransfer carries the fields a transfer request needs.
type bankTransfer struct {
	BeneficiaryAccount string
	BeneficiaryBank    string
	BeneficiaryName    string
	Amount             float64
	Reference          string
	Description        string
	CallbackURL        string
}

// initiateTransfer performs one POST against the rail's transfer
// endpoint. Failures are converted into a failed-shaped response; this
// method never returns an error.
func (a *bankAdapter) initiateTransfer(ctx context.Context, transfer bankTransfer) ProviderResponse {
	log.Printf("%s: initiating transfer of GHS %.2f for %s", a.provider.name, transfer.Amount, transfer.Reference)

	callback := transfer.CallbackURL
	if callback == "" {
		callback = a.callbackURL
	}

	body, err := a.client.postJSON(ctx, a.provider.transfersPath, map[string]interface{}{
		"beneficiary_account": transfer.BeneficiaryAccount,
		"beneficiary_bank":    transfer.BeneficiaryBank,
		"beneficiary_name":    transfer.BeneficiaryName,
		"amount":              transfer.Amount,
		"currency":            "GHS",
		"reference":           transfer.Reference,
		"description":         transfer.Description,
		"callback_url":        callback,
	})
	if err != nil {
		log.Printf("%s: transfer failed for %s: %v", a.provider.name, transfer.Reference, err)
		return ProviderResponse{
			Success:   false,
			Status:    StatusFailed,
			Reference: transfer.Reference,
			Message:   err.Error(),
			Provider:  a.provider.name,
			Amount:    transfer.Amount,
		}
	}

	reference := stringField(body, "reference")
	if reference == "" {
		reference = transfer.Reference
	}

	settlement := stringField(body, "estimated_settlement_time")
	if settlement == "" {
		settlement = a.provider.estimatedSettlement
	}

	resp := ProviderResponse{
		Success:                 true,
		TransactionID:           transactionID(body),
		Reference:               reference,
		Status:                  StatusPending,
		Message:                 "Transfer initiated",
		Provider:                a.provider.name,
		Amount:                  transfer.Amount,
		Fee:                     numberField(body, "fee"),
		EstimatedSettlementTime: settlement,
	}
	log.Printf("%s: transfer accepted for %s (transaction %s)", a.provider.name, transfer.Reference, resp.TransactionID)
	return resp
}

// checkTransferStatus queries the rail for the current state of a
// transfer. A failed lookup is reported as a failed response with
// amounts zeroed.
func (a *bankAdapter) checkTransferStatus(ctx context.Context, transactionID string) ProviderResponse {
	body, err := a.client.getJSON(ctx, a.provider.transfersPath+"/"+transactionID)
	if err != nil {
		log.Printf("%s: status check failed for %s: %v", a.provider.name, transactionID, err)
		return ProviderResponse{
			Success:       false,
			TransactionID: transactionID,
			Status:        StatusFailed,
			Message:       "Unable to retrieve transfer status: " + err.Error(),
			Provider:      a.provider.name,
		}
	}

	native := stringField(body, "status")
	status := a.provider.mapStatus(native)
	return ProviderResponse{
		Success:       status != StatusFailed,
		TransactionID: transactionID,
		Reference:     stringField(body, "reference"),
		Status:        status,
		Message:       statusMessage(status, native),
		Provider:      a.provider.name,
		Amount:        numberField(body, "amount"),
		Fee:           numberField(body, "fee"),
	}
}

// bankProviderForCode applies the routing rule: clearing code "002" is
// GCB's direct integration, everything else clears through GhIPSS.
func bankProviderForCode(bankCode string) bankProvider {
	if bankCode == GCBBankCode {
		return bankProviders[ProviderGCB]
	}
	return bankProviders[ProviderGhIPSS]
}
