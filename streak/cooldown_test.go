package streak

import (
	"testing"
	"time"
)

func TestCanTrigger(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		last *time.Time
		want bool
	}{
		{"never triggered", nil, true},
		{"zero timestamp", &time.Time{}, true},
		{"one minute short", ts(now.Add(-24*time.Hour + time.Minute)), false},
		{"exactly 24h", ts(now.Add(-24 * time.Hour)), true},
		{"well past", ts(now.Add(-48 * time.Hour)), true},
		{"just triggered", ts(now), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTrigger(now, tc.last, DefaultWindow); got != tc.want {
				t.Fatalf("CanTrigger = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRemainingAndFormat(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		last *time.Time
		want string
	}{
		{"available", nil, ""},
		{"one minute left", ts(now.Add(-23*time.Hour - 59*time.Minute)), "0h 1m"},
		{"boundary reached", ts(now.Add(-24 * time.Hour)), ""},
		{"just triggered", ts(now), "24h 0m"},
		{"half way", ts(now.Add(-12 * time.Hour)), "12h 0m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatRemaining(Remaining(now, tc.last, DefaultWindow))
			if got != tc.want {
				t.Fatalf("remaining label = %q, want %q", got, tc.want)
			}
		})
	}
}

func ts(v time.Time) *time.Time { return &v }
