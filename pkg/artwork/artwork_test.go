package artwork

import (
	"errors"
	"testing"
)

func TestDecodePage(t *testing.T) {
	body := []byte(`{
		"pagination": {"total": 100, "limit": 12, "offset": 12, "total_pages": 9, "current_page": 2},
		"data": [
			{"id": 27992, "title": "A Sunday on La Grande Jatte", "place_of_origin": "France",
			 "artist_display": "Georges Seurat", "inscriptions": null, "date_start": 1884, "date_end": 1886},
			{"id": 28560, "title": "The Bedroom", "place_of_origin": null,
			 "artist_display": "Vincent van Gogh", "inscriptions": "signed", "date_start": null, "date_end": 1889}
		]
	}`)

	page, err := DecodePage(body, 2)
	if err != nil {
		t.Fatalf("DecodePage() error = %v", err)
	}

	if page.Number != 2 {
		t.Errorf("Number = %d, want 2", page.Number)
	}
	if page.Total != 100 || page.TotalPages != 9 || page.Limit != 12 {
		t.Errorf("totals = (%d, %d, %d), want (100, 9, 12)", page.Total, page.TotalPages, page.Limit)
	}
	if len(page.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(page.Records))
	}

	first := page.Records[0]
	if first.ID != 27992 || first.Title != "A Sunday on La Grande Jatte" || first.DateEnd != 1886 {
		t.Errorf("first record = %+v", first)
	}
	if first.Inscriptions != "" {
		t.Errorf("null inscriptions should decode to empty string, got %q", first.Inscriptions)
	}

	second := page.Records[1]
	if second.PlaceOfOrigin != "" || second.DateStart != 0 {
		t.Errorf("null fields should decode to zero values, got %+v", second)
	}
}

func TestDecodePage_FallbackPageNumber(t *testing.T) {
	body := []byte(`{"pagination": {"total": 3, "limit": 12, "total_pages": 1}, "data": []}`)

	page, err := DecodePage(body, 4)
	if err != nil {
		t.Fatalf("DecodePage() error = %v", err)
	}
	if page.Number != 4 {
		t.Errorf("Number = %d, want requested page 4", page.Number)
	}
}

func TestDecodePage_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "missing pagination", body: `{"data": []}`, want: ErrMissingPagination},
		{name: "invalid json", body: `{"data": [`},
		{name: "wrong type", body: `{"data": {"id": 1}, "pagination": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePage([]byte(tt.body), 1)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPage_IsLast(t *testing.T) {
	records := []Artwork{{ID: 1}}
	tests := []struct {
		name string
		page Page
		want bool
	}{
		{"first of many", Page{Number: 1, TotalPages: 3, Records: records}, false},
		{"last page", Page{Number: 3, TotalPages: 3, Records: records}, true},
		{"past the end", Page{Number: 4, TotalPages: 3, Records: records}, true},
		{"empty page", Page{Number: 1, TotalPages: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.IsLast(); got != tt.want {
				t.Errorf("IsLast() = %v, want %v", got, tt.want)
			}
		})
	}
}
