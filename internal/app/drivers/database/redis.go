package database

import (
	"clinic-service/internal/app/config"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient dials the redis instance that holds clinic-service sessions,
// invoice number sequences, the side-effect outbox and the repair leader lock.
// Startup aborts when the server does not answer a ping.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("clinic-service: redis at %s unreachable: %v", rdb.Options().Addr, err)
	}

	log.Printf("clinic-service: connected to redis at %s", rdb.Options().Addr)
	return rdb
}
