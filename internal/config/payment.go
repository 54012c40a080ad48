package config

// ProviderConfig holds the credentials and endpoint for one external
// payment provider. It is immutable for the process lifetime.
type ProviderConfig struct {
	APIKey      string
	SecretKey   string
	MerchantID  string
	Environment string
	BaseURL     string
}

// GeneralPaymentConfig holds process-wide payment settings shared by all
// providers.
type GeneralPaymentConfig struct {
	WebhookURL  string
	CallbackURL string
}

// PaymentConfig is the full provider credential set. It is constructed
// once at startup via LoadPaymentConfig and passed by reference into the
// payment service, so tests can inject fakes without touching the
// environment.
type PaymentConfig struct {
	MTN        ProviderConfig
	Vodafone   ProviderConfig
	AirtelTigo ProviderConfig
	GhIPSS     ProviderConfig
	GCB        ProviderConfig
	General    GeneralPaymentConfig
}

// LoadPaymentConfig reads provider credentials from the environment,
// falling back to sandbox endpoints when unset.
func LoadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		MTN: ProviderConfig{
			APIKey:      GetEnv("MTN_MOMO_API_KEY", "sandbox-mtn-key"),
			SecretKey:   GetEnv("MTN_MOMO_SECRET_KEY", "sandbox-mtn-secret"),
			MerchantID:  GetEnv("MTN_MOMO_MERCHANT_ID", "sandbox-merchant"),
			Environment: GetEnv("MTN_MOMO_ENVIRONMENT", "sandbox"),
			BaseURL:     GetEnv("MTN_MOMO_BASE_URL", "https://sandbox.momodeveloper.mtn.com"),
		},
		Vodafone: ProviderConfig{
			APIKey:      GetEnv("VODAFONE_CASH_API_KEY", "sandbox-vodafone-key"),
			SecretKey:   GetEnv("VODAFONE_CASH_SECRET_KEY", "sandbox-vodafone-secret"),
			MerchantID:  GetEnv("VODAFONE_CASH_MERCHANT_ID", "sandbox-merchant"),
			Environment: GetEnv("VODAFONE_CASH_ENVIRONMENT", "sandbox"),
			BaseURL:     GetEnv("VODAFONE_CASH_BASE_URL", "https://sandbox.vodafone.com.gh/cash"),
		},
		AirtelTigo: ProviderConfig{
			APIKey:      GetEnv("AIRTELTIGO_API_KEY", "sandbox-airteltigo-key"),
			SecretKey:   GetEnv("AIRTELTIGO_SECRET_KEY", "sandbox-airteltigo-secret"),
			MerchantID:  GetEnv("AIRTELTIGO_MERCHANT_ID", "sandbox-merchant"),
			Environment: GetEnv("AIRTELTIGO_ENVIRONMENT", "sandbox"),
			BaseURL:     GetEnv("AIRTELTIGO_BASE_URL", "https://sandbox.airteltigo.com.gh/money"),
		},
		GhIPSS: ProviderConfig{
			APIKey:      GetEnv("GHIPSS_API_KEY", "sandbox-ghipss-key"),
			SecretKey:   GetEnv("GHIPSS_SECRET_KEY", "sandbox-ghipss-secret"),
			MerchantID:  GetEnv("GHIPSS_INSTITUTION_ID", "sandbox-institution"),
			Environment: GetEnv("GHIPSS_ENVIRONMENT", "sandbox"),
			BaseURL:     GetEnv("GHIPSS_BASE_URL", "https://sandbox.ghipss.net/gip"),
		},
		GCB: ProviderConfig{
			APIKey:      GetEnv("GCB_API_KEY", "sandbox-gcb-key"),
			SecretKey:   GetEnv("GCB_SECRET_KEY", "sandbox-gcb-secret"),
			MerchantID:  GetEnv("GCB_CORPORATE_ID", "sandbox-corporate"),
			Environment: GetEnv("GCB_ENVIRONMENT", "sandbox"),
			BaseURL:     GetEnv("GCB_BASE_URL", "https://sandbox.gcbbank.com.gh/api"),
		},
		General: GeneralPaymentConfig{
			WebhookURL:  GetEnv("PAYMENT_WEBHOOK_URL", "https://localhost:8443/webhooks/payments"),
			CallbackURL: GetEnv("PAYMENT_CALLBACK_URL", "https://localhost:8443/callbacks/payments"),
		},
	}
}
