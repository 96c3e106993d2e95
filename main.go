package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/auth"
	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/infra"
	"github.com/umalmyha/crm/internal/journal"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/internal/service"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Build()
	if err != nil {
		return err
	}

	if err := infra.ConfigureLogger(cfg.LogCfg.Level, cfg.LogCfg.Format); err != nil {
		return err
	}

	app, cleanup, err := build(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return start(app, cfg.HTTPCfg)
}

// build wires application, cleanup releases every opened connection
func build(cfg config.Config) (*echo.Echo, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, err := repository.NewMemoryStore(repository.DefaultSeed())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seed crm store - %w", err)
	}

	var opts []service.Option
	if cfg.PostgresCfg.DSN != "" {
		j, closeFn, err := buildJournal(cfg.PostgresCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open service record journal - %w", err)
		}
		closers = append(closers, closeFn)
		opts = append(opts, service.WithJournal(j))
	}

	provider := identityProvider(cfg.AuthCfg)
	if cfg.RedisCfg.Addr != "" {
		client, err := connectRedis(cfg.RedisCfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				logrus.Errorf("failed to close connection to redis - %v", err)
			}
		})
		provider = auth.NewCachedIdentityProvider(provider, cache.NewRedisIdentityCache(client, cfg.RedisCfg.IdentityCacheTTL))
	}

	crmSvc := service.NewCRMService(store, opts...)

	app, err := infra.Router(crmSvc, provider, cfg.AuthCfg.Timeout)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to build router - %w", err)
	}

	return app, cleanup, nil
}

func identityProvider(cfg config.AuthCfg) auth.IdentityProvider {
	if cfg.Provider == config.AuthProviderJwt {
		validator := auth.NewJwtValidator(jwt.GetSigningMethod(auth.AlgorithmEd25519), cfg.JwtPublicKey)
		return auth.NewJwtIdentityProvider(validator)
	}
	return auth.NewRemoteIdentityProvider(cfg.UserInfoURL, &http.Client{Timeout: cfg.Timeout})
}

func buildJournal(cfg config.PostgresCfg) (journal.Journal, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	pool, err := infra.Postgresql(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	if err := journal.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return journal.NewPostgresJournal(pool), pool.Close, nil
}

func connectRedis(cfg config.RedisCfg) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return infra.Redis(ctx, cfg.Addr, cfg.Password, cfg.DB)
}

func start(app *echo.Echo, cfg config.HTTPCfg) error {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logrus.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to stop server gracefully - %w", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutting down the server, unexpected error occurred - %w", err)
		}
	}
	return nil
}
