package config

import (
	"crypto"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

const (
	// AuthProviderRemote forwards bearer credential to OAuth2 user-info endpoint
	AuthProviderRemote = "remote"
	// AuthProviderJwt verifies bearer credential as locally signed jwt
	AuthProviderJwt = "jwt"
)

type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type AuthCfg struct {
	Provider         string        `env:"AUTH_PROVIDER" envDefault:"remote"`
	UserInfoURL      string        `env:"AUTH_USERINFO_URL" envDefault:""`
	Timeout          time.Duration `env:"AUTH_TIMEOUT" envDefault:"5s"`
	JwtPublicKeyFile string        `env:"AUTH_JWT_PUBLIC_KEY_FILE" envDefault:""`
	JwtPublicKey     crypto.PublicKey
}

type RedisCfg struct {
	Addr             string        `env:"REDIS_ADDR" envDefault:""`
	Password         string        `env:"REDIS_PASSWORD" envDefault:""`
	DB               int           `env:"REDIS_DB" envDefault:"0"`
	IdentityCacheTTL time.Duration `env:"IDENTITY_CACHE_TTL" envDefault:"5m"`
}

type PostgresCfg struct {
	DSN            string        `env:"POSTGRES_DSN" envDefault:""`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" envDefault:"5s"`
}

type Config struct {
	HTTPCfg     HTTPCfg
	LogCfg      LogCfg
	AuthCfg     AuthCfg
	RedisCfg    RedisCfg
	PostgresCfg PostgresCfg
}

// Build reads configuration from environment, .env file is loaded first if present
func Build() (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env file - %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	switch cfg.AuthCfg.Provider {
	case AuthProviderRemote:
		if cfg.AuthCfg.UserInfoURL == "" {
			return cfg, errors.New("AUTH_USERINFO_URL is required for remote auth provider")
		}
	case AuthProviderJwt:
		key, err := readJwtPublicKey(cfg.AuthCfg.JwtPublicKeyFile)
		if err != nil {
			return cfg, err
		}
		cfg.AuthCfg.JwtPublicKey = key
	default:
		return cfg, fmt.Errorf("unknown auth provider %q", cfg.AuthCfg.Provider)
	}

	return cfg, nil
}

func readJwtPublicKey(file string) (crypto.PublicKey, error) {
	if file == "" {
		return nil, errors.New("AUTH_JWT_PUBLIC_KEY_FILE is required for jwt auth provider")
	}

	jwtPublicKeyBytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key file for jwt - %w", err)
	}

	jwtPublicKey, err := jwt.ParseEdPublicKeyFromPEM(jwtPublicKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key for jwt - %w", err)
	}
	return jwtPublicKey, nil
}
