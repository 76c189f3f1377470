package cache

import (
	"net/http"
	"testing"
	"time"
)

func TestFreshUntil(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		headers map[string]string
		want    time.Time
	}{
		{
			name: "no headers uses default TTL",
			want: now.Add(DefaultTTL),
		},
		{
			name:    "max-age",
			headers: map[string]string{"Cache-Control": "public, max-age=120"},
			want:    now.Add(120 * time.Second),
		},
		{
			name: "max-age beats expires",
			headers: map[string]string{
				"Cache-Control": "max-age=60",
				"Expires":       now.Add(time.Hour).Format(http.TimeFormat),
			},
			want: now.Add(60 * time.Second),
		},
		{
			name:    "no-store",
			headers: map[string]string{"Cache-Control": "no-store"},
			want:    now,
		},
		{
			name:    "expires header",
			headers: map[string]string{"Expires": now.Add(30 * time.Minute).Format(http.TimeFormat)},
			want:    now.Add(30 * time.Minute),
		},
		{
			name:    "expires in the past",
			headers: map[string]string{"Expires": now.Add(-time.Hour).Format(http.TimeFormat)},
			want:    now,
		},
		{
			name:    "unparseable expires",
			headers: map[string]string{"Expires": "soon"},
			want:    now.Add(DefaultTTL),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			if got := freshUntil(h, now); !got.Equal(tt.want) {
				t.Errorf("freshUntil() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewEntry(t *testing.T) {
	headers := http.Header{"Cache-Control": []string{"max-age=300"}}

	entry := NewEntry(http.StatusOK, headers, []byte(`{"data": []}`))

	if string(entry.Data) != `{"data": []}` {
		t.Errorf("Data = %q", entry.Data)
	}
	if entry.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", entry.StatusCode)
	}
	if ttl := entry.TTL(); ttl < 4*time.Minute || ttl > 5*time.Minute {
		t.Errorf("TTL() = %v, want about 5m", ttl)
	}
	if entry.CachedAt.IsZero() {
		t.Error("CachedAt not set")
	}
}
