package busday

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCount(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       int
	}{
		// 2021-06-01 is a Tuesday; Jun 1-4 and Jun 7-9 are the weekdays in
		// the half-open interval, the Jun 5/6 weekend is skipped.
		{"order to ship", "2021-06-01", "2021-06-10", 7},
		{"same day", "2021-06-07", "2021-06-07", 0},
		{"one weekday", "2021-06-07", "2021-06-08", 1},
		{"full week", "2021-06-07", "2021-06-14", 5},
		{"weekend only", "2021-06-05", "2021-06-07", 0},
		{"start saturday", "2021-06-05", "2021-06-12", 5},
		{"several weeks", "2021-06-01", "2021-07-01", 22},
		{"ship before order", "2021-06-10", "2021-06-01", -7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Count(date(tc.start), date(tc.end)); got != tc.want {
				t.Fatalf("Count(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestCountIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("X", -7*3600)
	start := time.Date(2021, 6, 1, 23, 50, 0, 0, loc)
	end := time.Date(2021, 6, 10, 0, 5, 0, 0, time.UTC)
	if got := Count(start, end); got != 7 {
		t.Fatalf("Count with times = %d, want 7", got)
	}
}
