package constants

// NSQ topics
const (
	TopicUserRegistered = "auth.user_registered"
	TopicOTPVerified    = "auth.otp_verified"
)
