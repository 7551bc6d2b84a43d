package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is nil when redis is unavailable; callers degrade to the database.
var Client *redis.Client

func Init(addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}
	Client = c
	return nil
}

func Close() error {
	if Client == nil {
		return nil
	}
	err := Client.Close()
	Client = nil
	return err
}
