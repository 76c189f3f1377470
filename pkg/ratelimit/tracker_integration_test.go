//go:build integration

package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container and returns a client
func setupRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

// Two trackers on the same Redis share one budget.
func TestTracker_Integration_SharedBudget(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	logger := zerolog.Nop()
	a := NewTracker(redisClient, 10, logger)
	b := NewTracker(redisClient, 10, logger)
	fixed := time.Now()
	a.now = func() time.Time { return fixed }
	b.now = func() time.Time { return fixed }
	ctx := context.Background()

	var (
		mu      sync.Mutex
		allowed int
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		tracker := a
		if i%2 == 1 {
			tracker = b
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := tracker.Allow(ctx)
			if err != nil {
				t.Errorf("Allow() error = %v", err)
				return
			}
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 10 {
		t.Errorf("allowed = %d, want 10", allowed)
	}

	state, err := a.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state.Limit != 10 {
		t.Errorf("Limit = %d, want 10", state.Limit)
	}
}
