package utils

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/saldomental/saldo/quiz"
)

// Onboarding quiz sessions are kept per user so a reload resumes the flow.
// Redis holds the JSON snapshot; the in-memory map is the fallback when
// Redis is unavailable (single-instance only).

const quizSessionTTL = 24 * time.Hour

var (
	quizSessions   = map[uint]*quiz.Engine{}
	quizSessionsMu sync.Mutex
)

func quizKey(userID uint) string {
	return "quiz:session:" + strconv.FormatUint(uint64(userID), 10)
}

// LoadQuizSession returns the engine for a user, restoring it from Redis
// when present and creating a fresh one otherwise.
func LoadQuizSession(userID uint) *quiz.Engine {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if raw, err := rc.Get(ctx, quizKey(userID)).Bytes(); err == nil {
			e := quiz.NewEngine()
			if err := json.Unmarshal(raw, e); err == nil {
				return e
			}
			if Sugar != nil {
				Sugar.Warnf("quiz session snapshot corrupt user=%d, starting over", userID)
			}
		}
	}

	quizSessionsMu.Lock()
	defer quizSessionsMu.Unlock()
	if e, ok := quizSessions[userID]; ok {
		// Hand out a copy, like the Redis path does; the map entry is
		// never mutated outside the lock.
		return e.Clone()
	}
	e := quiz.NewEngine()
	quizSessions[userID] = e
	return e.Clone()
}

// SaveQuizSession snapshots the engine after a mutation, best-effort.
func SaveQuizSession(userID uint, e *quiz.Engine) {
	quizSessionsMu.Lock()
	quizSessions[userID] = e.Clone()
	quizSessionsMu.Unlock()

	rc := GetRedis()
	if rc == nil {
		return
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Set(ctx, quizKey(userID), raw, quizSessionTTL).Err(); err != nil {
		if Sugar != nil {
			Sugar.Warnf("quiz session save failed user=%d err=%v", userID, err)
		}
	}
}

// DropQuizSession removes the session after completion or restart hand-off.
func DropQuizSession(userID uint) {
	quizSessionsMu.Lock()
	delete(quizSessions, userID)
	quizSessionsMu.Unlock()
	CacheDelete(quizKey(userID))
}
