package utils

import (
	"context"
	"strconv"
	"time"
)

// The durable user_data row is the source of truth for the check-in
// cooldown. This cache is only a display hint so a reload does not have to
// wait for the database round-trip; entries expire with the window itself.

func checkinKey(userID uint) string {
	return "checkin:last:" + strconv.FormatUint(uint64(userID), 10)
}

// CacheCheckin records the last trigger instant for a user, best-effort.
func CacheCheckin(userID uint, at time.Time, window time.Duration) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Set(ctx, checkinKey(userID), at.UTC().Format(time.RFC3339), window).Err(); err != nil {
		if Sugar != nil {
			Sugar.Warnf("checkin cache set failed user=%d err=%v", userID, err)
		}
	}
}

// CachedCheckin returns the cached last trigger instant, if any.
func CachedCheckin(userID uint) (time.Time, bool) {
	rc := GetRedis()
	if rc == nil {
		return time.Time{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	v, err := rc.Get(ctx, checkinKey(userID)).Result()
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ClearCheckin drops the cached trigger once the window elapsed.
func ClearCheckin(userID uint) {
	CacheDelete(checkinKey(userID))
}
