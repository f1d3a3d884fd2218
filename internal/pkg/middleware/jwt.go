package middleware

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/piresc/storefront/internal/pkg/constants"
	jwtpkg "github.com/piresc/storefront/internal/pkg/jwt"
	"github.com/piresc/storefront/internal/utils"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*jwtpkg.Claims, error)
}

// BearerAuth guards routes with "Authorization: Bearer <token>". Verified
// claims are stored on the context under user_id, mobile and claims.
func BearerAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return verifier.Verify(auth)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(constants.ContextKeyClaims).(*jwtpkg.Claims)
			if !ok {
				return
			}
			c.Set(constants.ContextKeyUserID, claims.ID)
			c.Set(constants.ContextKeyMobile, claims.Mobile)
		},
		ContextKey: constants.ContextKeyClaims,
		ErrorHandler: func(c echo.Context, _ error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}
			return utils.UnauthorizedResponse(c, "Invalid token")
		},
	})
}

// ClaimsFromContext returns the claims stored by BearerAuth
func ClaimsFromContext(c echo.Context) (*jwtpkg.Claims, bool) {
	claims, ok := c.Get(constants.ContextKeyClaims).(*jwtpkg.Claims)
	return claims, ok
}
