package payment

import "errors"

// Service errors
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrMissingReference  = errors.New("payment reference is required")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrMissingMomoFields = errors.New("phone and mobile money provider are required")
	ErrUnknownProvider   = errors.New("unknown mobile money provider")
	ErrMissingBankFields = errors.New("beneficiary account, bank and name are required")
	ErrMissingCardFields = errors.New("card number, expiry, cvv and holder name are required")
)
