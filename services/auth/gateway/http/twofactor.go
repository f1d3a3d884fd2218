package gateway_http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/piresc/storefront/internal/pkg/constants"
	httpclient "github.com/piresc/storefront/internal/pkg/http"
	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/internal/utils"
	"github.com/piresc/storefront/services/auth"
)

const statusSuccess = "Success"

// ErrProviderRejected is returned when the provider answers with a non-success status
var ErrProviderRejected = errors.New("otp provider rejected request")

// twoFactorResponse is the envelope every 2Factor SMS endpoint answers with
type twoFactorResponse struct {
	Status  string `json:"Status"`
	Details string `json:"Details"`
}

// TwoFactorClient talks to the 2Factor SMS OTP API
type TwoFactorClient struct {
	client *httpclient.Client
	apiKey string
}

// NewTwoFactorClient creates a provider client from the OTP provider config
func NewTwoFactorClient(cfg models.ProviderConfig) *TwoFactorClient {
	return &TwoFactorClient{
		client: httpclient.NewClient(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}),
		apiKey: cfg.APIKey,
	}
}

// SendOTP asks the provider to generate and deliver a code, returning its session id
func (c *TwoFactorClient) SendOTP(ctx context.Context, mobile string) (string, error) {
	endpoint := fmt.Sprintf("/%s/SMS/%s/AUTOGEN", url.PathEscape(c.apiKey), url.PathEscape(utils.CountryCode+mobile))

	resp, err := c.call(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("send otp: %w", err)
	}
	if resp.Details == "" {
		return "", fmt.Errorf("send otp: provider returned no session id")
	}

	logger.Debug("OTP dispatched by provider", logger.Mobile(mobile))
	return resp.Details, nil
}

// VerifyOTP checks code against the provider session
func (c *TwoFactorClient) VerifyOTP(ctx context.Context, sessionID, code string) error {
	endpoint := fmt.Sprintf("/%s/SMS/VERIFY/%s/%s", url.PathEscape(c.apiKey), url.PathEscape(sessionID), url.PathEscape(code))

	resp, err := c.call(ctx, endpoint)
	if errors.Is(err, ErrProviderRejected) && isCodeRejection(resp.Details) {
		return fmt.Errorf("%w: %v", auth.ErrCodeRejected, err)
	}
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	return nil
}

// ResendOTP asks the provider to deliver the code of an existing session again
func (c *TwoFactorClient) ResendOTP(ctx context.Context, sessionID string) error {
	endpoint := fmt.Sprintf("/%s/SMS/RESEND/%s", url.PathEscape(c.apiKey), url.PathEscape(sessionID))

	if _, err := c.call(ctx, endpoint); err != nil {
		return fmt.Errorf("resend otp: %w", err)
	}
	return nil
}

// isCodeRejection reports whether a rejected verify was about the code itself,
// as opposed to the request or the account (bad API key, malformed session)
func isCodeRejection(details string) bool {
	details = strings.ToLower(details)
	return strings.Contains(details, "mismatch") || strings.Contains(details, "expired")
}

// call decodes the provider envelope. On ErrProviderRejected the decoded
// response is returned alongside the error.
func (c *TwoFactorClient) call(ctx context.Context, endpoint string) (*twoFactorResponse, error) {
	var resp twoFactorResponse
	status, err := c.client.GetJSON(ctx, endpoint, &resp)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusInternalServerError {
		return nil, fmt.Errorf("provider unavailable: status %d", status)
	}
	if !strings.EqualFold(resp.Status, statusSuccess) {
		return &resp, fmt.Errorf("%w: status %d: %s", ErrProviderRejected, status, resp.Details)
	}
	return &resp, nil
}

// Name identifies the provider in logs and config
func (c *TwoFactorClient) Name() string {
	return constants.ProviderTwoFactor
}
