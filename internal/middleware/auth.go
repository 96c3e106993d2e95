package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/auth"
	crmErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
)

const identityCtxKey = "identity"

const bearerScheme = "bearer"

var errMissingCredential = errors.New("authorization header is missing")

// Authenticate resolves caller identity from bearer credential via provider.
// Provider call is bounded by timeout when it is positive.
func Authenticate(provider auth.IdentityProvider, timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return crmErrors.NewAuthenticationErr("authentication failed", errMissingCredential)
			}

			identity, err := identify(c.Request().Context(), provider, token, timeout)
			if err != nil {
				var authErr *crmErrors.AuthenticationErr
				if errors.As(err, &authErr) {
					return authErr
				}
				logrus.Errorf("identity provider failed - %v", err)
				return crmErrors.NewAuthenticationErr("authentication failed", err)
			}

			c.Set(identityCtxKey, identity)
			c.SetRequest(c.Request().WithContext(auth.WithIdentity(c.Request().Context(), identity)))

			return next(c)
		}
	}
}

// IdentityFrom returns identity resolved by Authenticate or nil
func IdentityFrom(c echo.Context) *model.Identity {
	if identity, ok := c.Get(identityCtxKey).(*model.Identity); ok {
		return identity
	}
	return nil
}

func identify(ctx context.Context, provider auth.IdentityProvider, token string, timeout time.Duration) (*model.Identity, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return provider.Identify(ctx, token)
}

// both "Bearer <token>" and bare token are accepted
func bearerToken(hdr string) string {
	hdr = strings.TrimSpace(hdr)
	if hdr == "" {
		return ""
	}

	hdrSplit := strings.Fields(hdr)
	switch {
	case len(hdrSplit) == 2 && strings.EqualFold(hdrSplit[0], bearerScheme):
		return hdrSplit[1]
	case len(hdrSplit) == 1 && !strings.EqualFold(hdrSplit[0], bearerScheme):
		return hdrSplit[0]
	default:
		return ""
	}
}
