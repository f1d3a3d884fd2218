package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/storefront/internal/pkg/middleware"
	"github.com/piresc/storefront/internal/pkg/models"
	nrpkg "github.com/piresc/storefront/internal/pkg/newrelic"
	"github.com/piresc/storefront/internal/utils"
	"github.com/piresc/storefront/services/auth"
	"github.com/piresc/storefront/services/auth/usecase"
)

// AuthHandler handles the OTP authentication endpoints
type AuthHandler struct {
	authUC auth.AuthUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

// SendOTP handles POST /auth/send-otp
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var request models.SendOTPRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.authUC.SendOTP(c.Request().Context(), request.Mobile); err != nil {
		return writeAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP sent successfully")
}

// VerifyOTP handles POST /auth/verify-otp
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var request models.VerifyOTPRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	result, err := h.authUC.VerifyOTP(c.Request().Context(), request.Mobile, request.OTP)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, models.VerifyOTPResponse{
		Success:   true,
		IsNewUser: result.IsNewUser,
		Token:     result.Token,
		User:      result.User.ToResponse(),
	})
}

// ResendOTP handles POST /auth/resend-otp
func (h *AuthHandler) ResendOTP(c echo.Context) error {
	var request models.SendOTPRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.authUC.ResendOTP(c.Request().Context(), request.Mobile); err != nil {
		return writeAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP resent successfully")
}

// Introspect handles POST /auth/token/introspect
func (h *AuthHandler) Introspect(c echo.Context) error {
	var request models.IntrospectRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.authUC.IntrospectToken(c.Request().Context(), request.Token)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Me handles GET /auth/me behind the bearer middleware
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	resp := models.MeResponse{
		Success: true,
		ID:      claims.ID,
		Mobile:  claims.Mobile,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return c.JSON(http.StatusOK, resp)
}

// writeAuthError maps usecase failures to status codes and response bodies
func writeAuthError(c echo.Context, err error) error {
	var authErr *usecase.AuthError
	if !errors.As(err, &authErr) {
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		return utils.InternalServerErrorResponse(c, "")
	}

	switch authErr.Kind {
	case usecase.KindInvalidInput, usecase.KindNoActiveSession, usecase.KindAttemptsExhausted:
		return utils.BadRequestResponse(c, authErr.Message)
	case usecase.KindInvalidCode:
		return utils.InvalidCodeResponse(c, authErr.Message, authErr.AttemptsRemaining)
	case usecase.KindRateLimited:
		if authErr.RetryAfter > 0 {
			c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(int(authErr.RetryAfter.Seconds())))
		}
		return utils.TooManyRequestsResponse(c, authErr.Message)
	case usecase.KindProviderError:
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		if authErr.Details != "" {
			return utils.ErrorResponseWithDetails(c, http.StatusInternalServerError, authErr.Message, authErr.Details)
		}
		return utils.InternalServerErrorResponse(c, authErr.Message)
	default:
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		return utils.InternalServerErrorResponse(c, "")
	}
}
