package infra

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis connects to redis and verifies connection
func Redis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis - %w", err)
	}
	return client, nil
}
