package constants

// Context keys set by the bearer middleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyMobile = "mobile"
	ContextKeyClaims = "claims"
)

// Provider names accepted by OTP_PROVIDER
const (
	ProviderTwoFactor = "twofactor"
	ProviderLocal     = "local"
)
