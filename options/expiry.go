package options

import (
	"fmt"
	"math"
	"time"
)

// ExpiryLayout is the accepted expiry date format.
const ExpiryLayout = "2006-01-02"

// ParseExpiry parses a YYYY-MM-DD expiry as midnight UTC.
func ParseExpiry(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ExpiryLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("options: bad expiry %q: %w", s, err)
	}
	return t, nil
}

// YearsToExpiry counts whole days from tsMillis to expiry, floored, over
// 365. Past expiry clamps to 0.
func YearsToExpiry(tsMillis int64, expiry time.Time) float64 {
	now := time.UnixMilli(tsMillis).UTC()
	days := math.Floor(expiry.Sub(now).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return days / 365
}
