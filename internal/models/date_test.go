package models

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })

	// Between them these zones disagree with UTC on the calendar day at
	// every hour.
	for _, zone := range []*time.Location{
		time.FixedZone("UTC+14", 14*60*60),
		time.FixedZone("UTC-12", -12*60*60),
	} {
		t.Run(zone.String(), func(t *testing.T) {
			time.Local = zone

			before := time.Now().UTC()
			got := Today()
			after := time.Now().UTC()

			if got.Location() != time.UTC {
				t.Fatalf("expected UTC location, got %v", got.Location())
			}
			if !got.Equal(DateOnly(before)) && !got.Equal(DateOnly(after)) {
				t.Errorf("expected UTC calendar day %s, got %s", before.Format(DateLayout), got.Format(DateLayout))
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-03-10", "2024-03-10", false},
		{" 2024-03-10 ", "2024-03-10", false},
		{"2024-03-10T23:30:00Z", "2024-03-10", false},
		{"10/03/2024", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format(DateLayout) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format(DateLayout), tt.want)
			}
		})
	}
}
