package ratelimit

import (
	"strings"
	"testing"
	"time"
)

func TestBudgetState_Remaining(t *testing.T) {
	tests := []struct {
		name          string
		used          int
		wantRemaining int
		wantExhausted bool
	}{
		{"fresh window", 0, 60, false},
		{"half used", 30, 30, false},
		{"last request", 59, 1, false},
		{"used up", 60, 0, true},
		{"over budget", 75, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &BudgetState{Limit: 60, Used: tt.used}
			if got := s.Remaining(); got != tt.wantRemaining {
				t.Errorf("Remaining() = %d, want %d", got, tt.wantRemaining)
			}
			if got := s.Exhausted(); got != tt.wantExhausted {
				t.Errorf("Exhausted() = %v, want %v", got, tt.wantExhausted)
			}
		})
	}
}

func TestBudgetState_TimeUntilReset(t *testing.T) {
	past := &BudgetState{ResetAt: time.Now().Add(-time.Second)}
	if d := past.TimeUntilReset(); d != 0 {
		t.Errorf("TimeUntilReset() = %v for past reset, want 0", d)
	}

	future := &BudgetState{ResetAt: time.Now().Add(30 * time.Second)}
	if d := future.TimeUntilReset(); d <= 25*time.Second || d > 30*time.Second {
		t.Errorf("TimeUntilReset() = %v, want about 30s", d)
	}
}

func TestWindowKey(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	a := windowKey(base.Add(5 * time.Second))
	b := windowKey(base.Add(59 * time.Second))
	c := windowKey(base.Add(61 * time.Second))

	if a != b {
		t.Errorf("same window produced different keys: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("different windows produced the same key: %q", a)
	}
	if !strings.HasPrefix(a, RedisKeyPrefix+":") {
		t.Errorf("key %q lacks prefix %q", a, RedisKeyPrefix)
	}
}
