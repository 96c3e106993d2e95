package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/crm/internal/config"
)

const unreachableAddr = "127.0.0.1:1"

type buildTestSuite struct {
	suite.Suite
	cfg config.Config
}

func (s *buildTestSuite) SetupTest() {
	public, _, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err)

	s.cfg = config.Config{
		AuthCfg: config.AuthCfg{
			Provider:     config.AuthProviderJwt,
			Timeout:      time.Second,
			JwtPublicKey: public,
		},
		RedisCfg:    config.RedisCfg{IdentityCacheTTL: time.Minute},
		PostgresCfg: config.PostgresCfg{ConnectTimeout: time.Second},
	}
}

func (s *buildTestSuite) TestInMemory() {
	app, cleanup, err := build(s.cfg)
	s.Require().NoError(err)
	defer cleanup()

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	s.Assert().Equal(http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/CUST001", nil))
	s.Assert().Equal(http.StatusBadRequest, rec.Code, "routes must be protected")
}

func (s *buildTestSuite) TestUnreachableRedis() {
	s.cfg.RedisCfg.Addr = unreachableAddr

	app, cleanup, err := build(s.cfg)
	s.Assert().Error(err, "unreachable redis must fail startup")
	s.Assert().Nil(app)
	s.Assert().Nil(cleanup)
}

func (s *buildTestSuite) TestUnreachablePostgres() {
	s.cfg.PostgresCfg.DSN = "postgres://crm:crm@" + unreachableAddr + "/crm?sslmode=disable&connect_timeout=1"

	app, cleanup, err := build(s.cfg)
	s.Assert().ErrorContains(err, "failed to open service record journal")
	s.Assert().Nil(app)
	s.Assert().Nil(cleanup)
}

func TestBuildTestSuite(t *testing.T) {
	suite.Run(t, new(buildTestSuite))
}
