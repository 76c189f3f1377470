package cache

import "testing"

func TestPageKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  PageKey
		want string
	}{
		{
			name: "page only",
			key:  PageKey{Page: 1, Limit: 12},
			want: "artic:artworks:limit=12:page=1",
		},
		{
			name: "with field projection",
			key:  PageKey{Page: 7, Limit: 12, Fields: []string{"id", "title"}},
			want: "artic:artworks:limit=12:page=7:fields=id,title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageKey_DistinctLimits(t *testing.T) {
	a := PageKey{Page: 2, Limit: 12}
	b := PageKey{Page: 2, Limit: 25}
	if a.String() == b.String() {
		t.Errorf("keys for different limits collide: %q", a.String())
	}
}
