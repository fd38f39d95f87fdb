package redis

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the cache client. The cache is optional: when
// redis is unreachable the client stays nil and every lookup is a miss.
func InitRedis() {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Warning: redis unavailable, running without cache: %v", err)
		return
	}

	Client = client
	fmt.Println("✅ Connected to Redis")
}
