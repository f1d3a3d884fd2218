package constants

// Redis key formats
const (
	KeyOTPRateLimit = "otp:rate:%s"    // Format: otp:rate:{mobile}
	KeyOTPSession   = "otp:session:%s" // Format: otp:session:{mobile}
)

// Redis hash fields
const (
	FieldCount             = "count"
	FieldWindowDate        = "window_date"
	FieldProviderSessionID = "provider_session_id"
	FieldAttempts          = "attempts"
	FieldCreatedAt         = "created_at"
)
