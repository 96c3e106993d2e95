package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/model"
)

const authFailedMsg = "authentication failed"

// IdentityProvider resolves opaque bearer credential into caller identity
type IdentityProvider interface {
	Identify(ctx context.Context, token string) (*model.Identity, error)
}

type identityKey struct{}

// WithIdentity stores caller identity in context
func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns caller identity stored in context or nil
func IdentityFromContext(ctx context.Context) *model.Identity {
	if identity, ok := ctx.Value(identityKey{}).(*model.Identity); ok {
		return identity
	}
	return nil
}

// IdentityCache stores resolved identities
type IdentityCache interface {
	Find(ctx context.Context, key string) (*model.Identity, error)
	Cache(ctx context.Context, key string, identity *model.Identity) error
}

type cachedIdentityProvider struct {
	next  IdentityProvider
	cache IdentityCache
	now   func() time.Time
}

// NewCachedIdentityProvider builds IdentityProvider which remembers successfully resolved identities.
// Identities are never served from cache past credential expiry.
func NewCachedIdentityProvider(next IdentityProvider, cache IdentityCache) IdentityProvider {
	return &cachedIdentityProvider{next: next, cache: cache, now: time.Now}
}

func (p *cachedIdentityProvider) Identify(ctx context.Context, token string) (*model.Identity, error) {
	key := tokenKey(token)

	identity, err := p.cache.Find(ctx, key)
	if err != nil {
		logrus.Warnf("identity cache lookup failed, falling back to provider - %v", err)
	} else if identity != nil && !identity.ExpiredAt(p.now()) {
		return identity, nil
	}

	identity, err = p.next.Identify(ctx, token)
	if err != nil {
		return nil, err
	}

	if identity.ExpiredAt(p.now()) {
		return identity, nil
	}

	if err := p.cache.Cache(ctx, key, identity); err != nil {
		logrus.Warnf("failed to cache identity - %v", err)
	}
	return identity, nil
}

// tokens are never used as cache keys as is
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
