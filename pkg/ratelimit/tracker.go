package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for the request budget.
var (
	budgetRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "artic_rate_limit_remaining",
		Help: "Requests remaining in the current budget window",
	})

	budgetBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artic_rate_limit_blocks_total",
		Help: "Total number of requests blocked because the budget was exhausted",
	})
)

// Tracker counts requests per window in Redis and gates new ones.
type Tracker struct {
	redis  *redis.Client
	limit  int
	logger zerolog.Logger
	now    func() time.Time
}

// NewTracker creates a tracker allowing limit requests per minute.
// A non-positive limit uses DefaultRequestsPerMinute.
func NewTracker(redisClient *redis.Client, limit int, logger zerolog.Logger) *Tracker {
	if limit <= 0 {
		limit = DefaultRequestsPerMinute
	}
	return &Tracker{
		redis:  redisClient,
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
}

// Allow counts one request against the current window.
// Returns false when the window's budget is already used up; the caller must
// not send the request.
func (t *Tracker) Allow(ctx context.Context) (bool, error) {
	now := t.now()
	key := windowKey(now)

	pipe := t.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// Two windows, so a slow clock on another client still finds the key.
	pipe.Expire(ctx, key, 2*Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("count request in redis: %w", err)
	}

	state := &BudgetState{
		Limit:   t.limit,
		Used:    int(incr.Val()),
		ResetAt: windowStart(now).Add(Window),
	}
	budgetRemaining.Set(float64(state.Remaining()))

	if state.Used > t.limit {
		budgetBlocksTotal.Inc()
		t.logger.Warn().
			Int("limit", t.limit).
			Int("used", state.Used).
			Dur("reset_in", state.TimeUntilReset()).
			Msg("Request budget exhausted - blocking request")
		return false, nil
	}

	if state.Remaining() <= t.limit/10 {
		t.logger.Warn().
			Int("remaining", state.Remaining()).
			Msg("Request budget nearly exhausted")
	}

	return true, nil
}

// State reads the current window without counting a request.
func (t *Tracker) State(ctx context.Context) (*BudgetState, error) {
	now := t.now()
	used, err := t.redis.Get(ctx, windowKey(now)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get request count: %w", err)
	}

	return &BudgetState{
		Limit:   t.limit,
		Used:    used,
		ResetAt: windowStart(now).Add(Window),
	}, nil
}
