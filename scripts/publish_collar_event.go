// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/geogrid-service/internal/domain"
)

const metaKey = "stats:collar:meta"

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	reason := flag.String("reason", domain.CollarReasonInitial, "collar recompute reason")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	before, _ := client.HGet(ctx, metaKey, "total").Int64()

	// Collar вокруг Барселоны на зуме 12
	event := domain.CollarUpdatedEvent{
		EventID:   uuid.New(),
		SessionID: uuid.New(),
		Field:     "location",
		Reason:    *reason,
		Collar: domain.MapCollar{
			BoundingBox: domain.NewBoundingBox(41.45, 2.10, 41.35, 2.22),
			Zoom:        12,
		},
		Precision:  6,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamCollarUpdated,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamCollarUpdated)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Session ID: %s\n", event.SessionID)
	fmt.Printf("   Reason: %s\n", event.Reason)

	fmt.Printf("\nWaiting for the collar-stats worker to count it...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: stats counter did not change")
			return
		case <-ticker.C:
			total, err := client.HGet(ctx, metaKey, "total").Int64()
			if err != nil && err != redis.Nil {
				continue
			}
			if total > before {
				reasons, _ := client.HGetAll(ctx, "stats:collar:reason").Result()
				fmt.Printf("\nCounted: total %d -> %d\n", before, total)
				pretty, _ := json.MarshalIndent(reasons, "", "  ")
				fmt.Printf("%s\n", pretty)
				return
			}
		}
	}
}
