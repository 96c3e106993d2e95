package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/crm/internal/auth"
	"github.com/umalmyha/crm/internal/model"
)

const connectionTimeout = 3 * time.Second

const (
	redisContainerName = "redis-cache-test-crm"
	redisTestPassword  = "cache-test"
	redisPort          = "6380"
	redisTestDB        = 0
)

var _ auth.IdentityCache = (*RedisIdentityCache)(nil)

type identityCacheTestSuite struct {
	suite.Suite
	dockerPool  *dockertest.Pool
	redis       *dockertest.Resource
	redisClient *redis.Client
}

func (s *identityCacheTestSuite) SetupSuite() {
	t := s.T()
	assert := s.Require()

	t.Log("build docker pool")
	dockerPool, err := dockertest.NewPool("")
	assert.NoError(err, "failed to create pool")

	t.Log("sending ping to docker...")
	if err := dockerPool.Client.Ping(); err != nil {
		t.Skipf("docker is not available - %v", err)
	}

	s.dockerPool = dockerPool

	t.Log("starting redis...")
	redisCache, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Name:       redisContainerName,
		Repository: "redis",
		Tag:        "latest",
		Cmd:        []string{"--requirepass", redisTestPassword},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"6379/tcp": {{HostIP: "localhost", HostPort: fmt.Sprintf("%s/tcp", redisPort)}},
		},
	})
	assert.NoError(err, "failed to start redis")

	s.redis = redisCache

	t.Log("connecting to redis...")
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("localhost:%s", redisPort),
			Password: redisTestPassword,
			DB:       redisTestDB,
		})

		return s.redisClient.Ping(ctx).Err()
	})
	assert.NoError(err, "failed to establish connection to redis")
}

func (s *identityCacheTestSuite) TearDownSuite() {
	t := s.T()

	if s.redisClient != nil {
		t.Log("closing connection to redis")
		if err := s.redisClient.Close(); err != nil {
			t.Logf("failed to gracefully close connection to redis - %v", err)
		}
	}

	if s.redis != nil {
		if err := s.dockerPool.Purge(s.redis); err != nil {
			t.Logf("failed to purge redis container - %v", err)
		}
	}
}

func (s *identityCacheTestSuite) TestFindAndCache() {
	ctx := context.Background()
	identityCache := NewRedisIdentityCache(s.redisClient, time.Minute)

	s.T().Log("miss")
	{
		identity, err := identityCache.Find(ctx, "absent")
		s.Require().NoError(err, "miss is not an error")
		s.Assert().Nil(identity)
	}

	s.T().Log("hit")
	{
		cached := &model.Identity{Subject: "agent-1", Claims: map[string]any{"email": "agent@example.com"}}
		s.Require().NoError(identityCache.Cache(ctx, "token-hash", cached))

		identity, err := identityCache.Find(ctx, "token-hash")
		s.Require().NoError(err)
		s.Require().NotNil(identity)
		s.Assert().Equal("agent-1", identity.Subject)
		s.Assert().Equal("agent@example.com", identity.Claims["email"])

		ttl, err := s.redisClient.TTL(ctx, "identity:token-hash").Result()
		s.Require().NoError(err)
		s.Assert().Greater(ttl, time.Duration(0), "entry must expire")
		s.Assert().LessOrEqual(ttl, time.Minute)
	}

	s.T().Log("corrupted entry")
	{
		s.Require().NoError(s.redisClient.Set(ctx, "identity:corrupted", "not msgpack", time.Minute).Err())
		_, err := identityCache.Find(ctx, "corrupted")
		s.Assert().Error(err)
	}
}

func (s *identityCacheTestSuite) TestExpiration() {
	ctx := context.Background()
	identityCache := NewRedisIdentityCache(s.redisClient, time.Second)

	s.Require().NoError(identityCache.Cache(ctx, "short-lived", &model.Identity{Subject: "agent-2"}))
	s.Require().Eventually(func() bool {
		identity, err := identityCache.Find(ctx, "short-lived")
		return err == nil && identity == nil
	}, 5*time.Second, 100*time.Millisecond, "entry must be evicted after ttl")
}

func (s *identityCacheTestSuite) TestTimeToLiveCappedByExpiry() {
	ctx := context.Background()
	identityCache := NewRedisIdentityCache(s.redisClient, time.Hour)

	s.T().Log("credential expiring before ttl")
	{
		identity := &model.Identity{Subject: "agent-3", ExpiresAt: time.Now().Add(30 * time.Second)}
		s.Require().NoError(identityCache.Cache(ctx, "expiring", identity))

		ttl, err := s.redisClient.TTL(ctx, "identity:expiring").Result()
		s.Require().NoError(err)
		s.Assert().Greater(ttl, time.Duration(0))
		s.Assert().LessOrEqual(ttl, 30*time.Second, "entry must not outlive credential")
	}

	s.T().Log("expired credential")
	{
		identity := &model.Identity{Subject: "agent-4", ExpiresAt: time.Now().Add(-time.Second)}
		s.Require().NoError(identityCache.Cache(ctx, "expired", identity))

		cached, err := identityCache.Find(ctx, "expired")
		s.Require().NoError(err)
		s.Assert().Nil(cached, "expired credential must not be cached")
	}

	s.T().Log("expiry survives round trip")
	{
		expiresAt := time.Now().Add(time.Minute).Truncate(time.Second)
		s.Require().NoError(identityCache.Cache(ctx, "round-trip", &model.Identity{Subject: "agent-5", ExpiresAt: expiresAt}))

		cached, err := identityCache.Find(ctx, "round-trip")
		s.Require().NoError(err)
		s.Require().NotNil(cached)
		s.Assert().True(expiresAt.Equal(cached.ExpiresAt))
	}
}

func TestRedisIdentityCacheTimeToLive(t *testing.T) {
	now := time.Date(2024, time.August, 16, 12, 0, 0, 0, time.UTC)
	identityCache := NewRedisIdentityCache(nil, time.Minute)
	identityCache.now = func() time.Time { return now }

	cases := []struct {
		expiresAt time.Time
		ttl       time.Duration
	}{
		{time.Time{}, time.Minute},
		{now.Add(time.Hour), time.Minute},
		{now.Add(10 * time.Second), 10 * time.Second},
		{now, 0},
		{now.Add(-time.Second), -time.Second},
	}

	for _, tc := range cases {
		ttl := identityCache.timeToLive(&model.Identity{ExpiresAt: tc.expiresAt})
		require.Equal(t, tc.ttl, ttl, "expires at %v", tc.expiresAt)
	}
}

func TestIdentityCacheTestSuite(t *testing.T) {
	suite.Run(t, new(identityCacheTestSuite))
}
