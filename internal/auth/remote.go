package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	crmErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
)

var subjectClaims = []string{"sub", "open_id", "user_id", "login", "id"}

type remoteIdentityProvider struct {
	url    string
	client *http.Client
}

// NewRemoteIdentityProvider builds IdentityProvider which forwards bearer credential to OAuth2 user-info endpoint
func NewRemoteIdentityProvider(url string, client *http.Client) IdentityProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &remoteIdentityProvider{url: url, client: client}
}

func (p *remoteIdentityProvider) Identify(ctx context.Context, token string) (*model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build user-info request - %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, crmErrors.NewAuthenticationErr(authFailedMsg, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, crmErrors.NewAuthenticationErr(authFailedMsg, fmt.Errorf("user-info endpoint responded with %d", res.StatusCode))
	}

	claims := make(map[string]any)
	if err := json.NewDecoder(res.Body).Decode(&claims); err != nil {
		return nil, crmErrors.NewAuthenticationErr(authFailedMsg, fmt.Errorf("malformed user-info response - %w", err))
	}

	return &model.Identity{Subject: subject(claims), Claims: claims, ExpiresAt: expiresAt(claims)}, nil
}

// exp is unix seconds as in jwt
func expiresAt(claims map[string]any) time.Time {
	if exp, ok := claims["exp"].(float64); ok && exp > 0 {
		return time.Unix(int64(exp), 0)
	}
	return time.Time{}
}

// user-info payloads nest the user under "data" on some providers
func subject(claims map[string]any) string {
	if data, ok := claims["data"].(map[string]any); ok {
		if s := subject(data); s != "" {
			return s
		}
	}

	for _, name := range subjectClaims {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
