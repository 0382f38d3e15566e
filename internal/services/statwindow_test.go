package services

import (
	"testing"
	"time"
)

func TestMonthWindowStart(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		now    time.Time
		months int
		want   time.Time
	}{
		{
			name:   "mid month",
			now:    time.Date(2024, time.August, 15, 10, 30, 0, 0, time.UTC),
			months: 5,
			want:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "window crosses year boundary",
			now:    time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			months: 5,
			want:   time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// Subtracting months from the 31st must not roll into the
			// following month; anchoring to the 1st keeps it stable.
			name:   "day 31 does not skew the boundary",
			now:    time.Date(2024, time.July, 31, 23, 59, 59, 0, time.UTC),
			months: 5,
			want:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "non UTC input is normalized",
			now:    time.Date(2024, time.August, 1, 1, 0, 0, 0, time.FixedZone("UTC+9", 9*3600)),
			months: 5,
			want:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "zero months clamps to first of current month",
			now:    time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC),
			months: 0,
			want:   time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := monthWindowStart(tc.now, tc.months)
			if !got.Equal(tc.want) {
				t.Fatalf("monthWindowStart(%v, %d): got=%v want=%v", tc.now, tc.months, got, tc.want)
			}
		})
	}
}

func TestWeekWindowStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)
	want := time.Date(2024, time.August, 8, 12, 0, 0, 0, time.UTC)
	if got := weekWindowStart(now); !got.Equal(want) {
		t.Fatalf("weekWindowStart: got=%v want=%v", got, want)
	}
}
