package utils

import (
	"context"
	"time"

	"github.com/saldomental/saldo/config"
)

// RegistrationCooldownTry enforces a short cooldown between attempts per IP.
// Returns true when the attempt may proceed. Without Redis the check is
// skipped rather than blocking sign-ups.
func RegistrationCooldownTry(ip string) bool {
	cfg := config.Get()
	sec := cfg.RegisterAttemptCooldownSec
	if sec <= 0 {
		return true
	}
	rc := GetRedis()
	if rc == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	ok, err := rc.SetNX(ctx, "reg:cooldown:"+ip, "1", time.Duration(sec)*time.Second).Result()
	if err != nil {
		return true
	}
	return ok
}

// RegistrationDailyLimitCheck returns true while the per-IP daily cap has
// not been reached.
func RegistrationDailyLimitCheck(ip string) bool {
	cfg := config.Get()
	limit := cfg.RegisterMaxPerIPPerDay
	if limit <= 0 {
		return true
	}
	rc := GetRedis()
	if rc == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := "reg:daily:" + ip + ":" + time.Now().Format("2006-01-02")
	n, err := rc.Get(ctx, key).Int()
	if err != nil {
		return true
	}
	return n < limit
}

// RegistrationDailyIncrement records a successful registration for the IP.
func RegistrationDailyIncrement(ip string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := "reg:daily:" + ip + ":" + time.Now().Format("2006-01-02")
	if n, err := rc.Incr(ctx, key).Result(); err == nil && n == 1 {
		_ = rc.Expire(ctx, key, 24*time.Hour).Err()
	}
}
