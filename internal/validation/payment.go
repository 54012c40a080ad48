package validation

import "mmdapay/internal/services/payment"

// Payment validates a payment request's shared and method-specific
// fields. The payment service re-checks the method-specific fields
// before dispatch; this gives the HTTP layer per-field messages.
func (v *Validator) Payment(req *payment.PaymentRequest) {
	v.Positive("amount", req.Amount)
	v.Required("reference", req.Reference)

	switch req.Method {
	case payment.MethodMobileMoney:
		v.Phone("phone", req.Phone)
		v.Required("mobile_money_provider", req.MobileMoneyProvider)
	case payment.MethodBankTransfer:
		v.Required("beneficiary_account", req.BeneficiaryAccount)
		v.Required("beneficiary_bank", req.BeneficiaryBank)
		v.Required("beneficiary_name", req.BeneficiaryName)
	case payment.MethodCard:
		v.Required("card_number", req.CardNumber)
		v.Required("card_expiry", req.CardExpiry)
		v.Required("card_cvv", req.CardCVV)
		v.Required("card_holder_name", req.CardHolderName)
	case payment.MethodCash:
		// no extra fields
	default:
		v.AddError("payment_method", "must be one of mobile_money, bank_transfer, card_payment, cash")
	}
}

// Registration validates a taxpayer registration request.
func (v *Validator) Registration(name, email, phone, tin, password string) {
	v.Required("name", name)
	v.Email("email", email)
	v.Phone("phone", phone)
	v.TIN("tin", tin)
	v.MinLength("password", password, 8)
	v.Check(HasSpecialChar(password), "password", "must contain a special character")
}
