package query

import (
	"fmt"
	"math"
	"time"
)

// HumanDuration quantizes d into the finest unit whose magnitude is
// under that unit's threshold (1000ms, 60s, 60m, 24h, 7D, 365 days for
// W), falling back to years, and rounds to the nearest integer in that
// unit. Units below a day are lowercase (ms, s, m, h); day-scale units
// are uppercase (D, W, Y).
func HumanDuration(d time.Duration) string {
	ms := d.Seconds() * 1000
	if ms < 0 {
		ms = -ms
	}

	if ms < 1000 {
		return fmt.Sprintf("%dms", round(ms))
	}
	s := ms / 1000
	if s < 60 {
		return fmt.Sprintf("%ds", round(s))
	}
	m := s / 60
	if m < 60 {
		return fmt.Sprintf("%dm", round(m))
	}
	h := m / 60
	if h < 24 {
		return fmt.Sprintf("%dh", round(h))
	}
	dd := h / 24
	if dd < 7 {
		return fmt.Sprintf("%dD", round(dd))
	}
	if dd < 365 {
		return fmt.Sprintf("%dW", round(dd/7))
	}
	y := dd / 365
	return fmt.Sprintf("%dY", round(y))
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
