package xclient

import (
	"os"
	"strconv"

	"golang.org/x/time/rate"
)

// Read endpoints on the v2 API allow roughly 900 requests per 15 minutes;
// 1 rps with a small burst stays comfortably under that.
const (
	defaultRPS   = 1.0
	defaultBurst = 5
)

// newDefaultLimiter creates a rate limiter, with env overrides for tests
// and elevated-access accounts.
func newDefaultLimiter() *rate.Limiter {
	rps := defaultRPS
	burst := defaultBurst
	if v := os.Getenv("X_API_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rps = f
		}
	}
	if v := os.Getenv("X_API_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			burst = n
		}
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
