package payment

import (
	"context"
	"log"
	"strings"
	"time"

	"mmdapay/internal/config"
)

// momoProvider describes one mobile money network: its endpoints, its
// transaction-id prefix and its native status vocabulary. Adapters are
// the same code parameterized by this descriptor; the table below is the
// single place a new network would be added.
type momoProvider struct {
	key             string
	name            string
	idPrefix        string
	collectionsPath string
	statusMap       map[string]Status
}

var momoProviders = map[string]momoProvider{
	ProviderMTN: {
		key:             ProviderMTN,
		name:            "MTN Mobile Money",
		idPrefix:        "MTN",
		collectionsPath: "/collections",
		statusMap: map[string]Status{
			"PENDING":    StatusPending,
			"PROCESSING": StatusProcessing,
			"SUCCESSFUL": StatusSuccess,
			"FAILED":     StatusFailed,
			"CANCELLED":  StatusFailed,
		},
	},
	ProviderVodafone: {
		key:             ProviderVodafone,
		name:            "Vodafone Cash",
		idPrefix:        "VOD",
		collectionsPath: "/payments",
		statusMap: map[string]Status{
			"initiated":   StatusPending,
			"in_progress": StatusProcessing,
			"completed":   StatusSuccess,
			"failed":      StatusFailed,
			"rejected":    StatusFailed,
		},
	},
	ProviderAirtelTigo: {
		key:             ProviderAirtelTigo,
		name:            "AirtelTigo Money",
		idPrefix:        "ATL",
		collectionsPath: "/collections",
		statusMap: map[string]Status{
			"PENDING":    StatusPending,
			"IN_PROCESS": StatusProcessing,
			"SUCCESS":    StatusSuccess,
			"FAILED":     StatusFailed,
			"EXPIRED":    StatusFailed,
		},
	},
}

// mapStatus translates a native provider status onto the closed 4-state
// set. Unknown values map to pending, never to failed, so an
// unrecognized provider state is not surfaced as a false negative.
func (p momoProvider) mapStatus(native string) Status {
	if s, ok := p.statusMap[native]; ok {
		return s
	}
	return StatusPending
}

// momoAdapter performs the wire calls for one mobile money network.
type momoAdapter struct {
	provider    momoProvider
	client      *providerClient
	callbackURL string
}

func newMomoAdapter(provider momoProvider, cfg config.ProviderConfig, general config.GeneralPaymentConfig) *momoAdapter {
	return &momoAdapter{
		provider:    provider,
		client:      newProviderClient(provider.name, cfg),
		callbackURL: general.CallbackURL,
	}
}

// momoCharge carries the fields a collection request needs.
type momoCharge struct {
	Phone       string
	Amount      float64
	Reference   string
	Description string
	CallbackURL string
}

// initiatePayment performs one POST against the network's collection
// endpoint. Failures are converted into a failed-shaped response; this
// method never returns an error.
func (a *momoAdapter) initiatePayment(ctx context.Context, charge momoCharge) ProviderResponse {
	log.Printf("%s: initiating collection of GHS %.2f for %s", a.provider.name, charge.Amount, charge.Reference)

	callback := charge.CallbackURL
	if callback == "" {
		callback = a.callbackURL
	}

	body, err := a.client.postJSON(ctx, a.provider.collectionsPath, map[string]interface{}{
		"phone":        charge.Phone,
		"amount":       charge.Amount,
		"currency":     "GHS",
		"reference":    charge.Reference,
		"description":  charge.Description,
		"callback_url": callback,
	})
	if err != nil {
		log.Printf("%s: collection failed for %s: %v", a.provider.name, charge.Reference, err)
		return ProviderResponse{
			Success:   false,
			Status:    StatusFailed,
			Reference: charge.Reference,
			Message:   err.Error(),
			Provider:  a.provider.name,
			Amount:    charge.Amount,
		}
	}

	reference := stringField(body, "reference")
	if reference == "" {
		reference = charge.Reference
	}

	resp := ProviderResponse{
		Success:       true,
		TransactionID: transactionID(body),
		Reference:     reference,
		Status:        StatusPending,
		Message:       "Payment initiated. Awaiting customer approval on handset.",
		Provider:      a.provider.name,
		Amount:        charge.Amount,
		Fee:           numberField(body, "fee"),
	}
	log.Printf("%s: collection accepted for %s (transaction %s)", a.provider.name, charge.Reference, resp.TransactionID)
	return resp
}

// checkPaymentStatus queries the network for the current state of a
// transaction. A failed lookup is reported as a failed response with
// amounts zeroed; callers distinguish it from a failed payment by the
// message.
func (a *momoAdapter) checkPaymentStatus(ctx context.Context, transactionID string) ProviderResponse {
	body, err := a.client.getJSON(ctx, a.provider.collectionsPath+"/"+transactionID)
	if err != nil {
		log.Printf("%s: status check failed for %s: %v", a.provider.name, transactionID, err)
		return ProviderResponse{
			Success:       false,
			TransactionID: transactionID,
			Status:        StatusFailed,
			Message:       "Unable to retrieve payment status: " + err.Error(),
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

// transactionID reads the provider transaction id, tolerating the field
// names seen across the networks.
func transactionID(body map[string]interface{}) string {
	for _, key := range []string{"transaction_id", "transactionId", "id"} {
		if id := stringField(body, key); id != "" {
			return id
		}
	}
	return ""
}

func statusMessage(status Status, native string) string {
	switch status {
	case StatusSuccess:
		return "Payment completed successfully"
	case StatusProcessing:
		return "Payment is being processed"
	case StatusFailed:
		return "Payment failed"
	default:
		if native != "" && !strings.EqualFold(native, string(StatusPending)) {
			return "Payment pending (provider reported: " + native + ")"
		}
		return "Payment is pending"
	}
}

// inferMomoProvider guesses which network issued a transaction id from
// its prefix. This is a legacy fallback for callers that did not persist
// the provider; when a recorded provider key is available it is always
// preferred.
func inferMomoProvider(transactionID string) momoProvider {
	switch {
	case strings.HasPrefix(transactionID, "MTN"), strings.HasPrefix(transactionID, "M"):
		return momoProviders[ProviderMTN]
	case strings.HasPrefix(transactionID, "VOD"), strings.HasPrefix(transactionID, "V"):
		return momoProviders[ProviderVodafone]
	case strings.HasPrefix(transactionID, "ATL"), strings.HasPrefix(transactionID, "A"):
		return momoProviders[ProviderAirtelTigo]
	default:
		return momoProviders[ProviderMTN]
	}
}

// simulatedDelay is overridable in tests so synthetic handlers and
// mocked status checks do not slow the suite down.
var simulatedDelay = func(d time.Duration) { time.Sleep(d) }
