package utils

import (
	"context"
	"time"

	"github.com/mojocn/base64Captcha"
)

// redisCaptchaStore keeps captcha answers in Redis so verification works
// across instances. When Redis is unreachable it degrades to the in-process
// memory store rather than breaking registration.
type redisCaptchaStore struct {
	ttl      time.Duration
	fallback base64Captcha.Store
}

func NewRedisCaptchaStore(ttl time.Duration) base64Captcha.Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisCaptchaStore{ttl: ttl, fallback: base64Captcha.DefaultMemStore}
}

func (s *redisCaptchaStore) key(id string) string {
	return "captcha:" + id
}

// Set stores the answer with TTL.
func (s *redisCaptchaStore) Set(id string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := GetRedis().Set(ctx, s.key(id), value, s.ttl).Err(); err != nil {
		return s.fallback.Set(id, value)
	}
	return nil
}

// Get retrieves the answer and optionally clears it.
func (s *redisCaptchaStore) Get(id string, clear bool) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rc := GetRedis()
	key := s.key(id)
	if !clear {
		if v, err := rc.Get(ctx, key).Result(); err == nil && v != "" {
			return v
		}
		return s.fallback.Get(id, false)
	}
	// GETDEL needs Redis >= 6.2; fall back to an atomic GET+DEL script.
	if v, err := rc.GetDel(ctx, key).Result(); err == nil && v != "" {
		return v
	}
	script := `local v=redis.call('GET', KEYS[1]); if v then redis.call('DEL', KEYS[1]); end; return v`
	if res, err := rc.Eval(ctx, script, []string{key}).Result(); err == nil {
		if v, ok := res.(string); ok && v != "" {
			return v
		}
	}
	return s.fallback.Get(id, true)
}

// Verify compares the answer and consumes it when clear is set.
func (s *redisCaptchaStore) Verify(id, answer string, clear bool) bool {
	v := s.Get(id, clear)
	return v != "" && v == answer
}
