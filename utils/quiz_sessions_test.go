package utils

import (
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saldomental/saldo/config"
)

var utilsTestOnce sync.Once

func utilsTestSetup(t *testing.T) {
	t.Helper()
	utilsTestOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		Logger = zap.NewNop()
		Sugar = Logger.Sugar()
		config.SetForTesting(config.AppConfig{
			JWTSecret:            "test-secret",
			RateLimitPerMinute:   10000,
			CheckinCooldownHours: 24,
			RedisHost:            "127.0.0.1",
			RedisPort:            6379,
		})
	})
}

func TestQuizSessionLoadsAreIndependent(t *testing.T) {
	utilsTestSetup(t)
	const uid = 991001
	DropQuizSession(uid)
	defer DropQuizSession(uid)

	a := LoadQuizSession(uid)
	b := LoadQuizSession(uid)

	if err := a.SubmitAnswer("Maria Silva"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if a.Step != 1 {
		t.Fatalf("a.Step = %d, want 1", a.Step)
	}
	if b.Step != 0 {
		t.Fatalf("b.Step = %d, want 0; loads share state", b.Step)
	}
	if len(b.Answers) != 0 {
		t.Fatalf("b.Answers = %v, want empty", b.Answers)
	}
}

func TestQuizSessionMutationAfterSaveNotVisible(t *testing.T) {
	utilsTestSetup(t)
	const uid = 991002
	DropQuizSession(uid)
	defer DropQuizSession(uid)

	e := LoadQuizSession(uid)
	if err := e.SubmitAnswer("Maria Silva"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	SaveQuizSession(uid, e)

	// Mutating the caller's engine after the save must not leak into the
	// stored snapshot.
	if err := e.SubmitAnswer(30); err != nil {
		t.Fatalf("submit age: %v", err)
	}

	got := LoadQuizSession(uid)
	if got.Step != 1 {
		t.Fatalf("loaded Step = %d, want 1 (state at save time)", got.Step)
	}
	if len(got.Answers) != 1 {
		t.Fatalf("loaded Answers = %v, want the single saved answer", got.Answers)
	}
}
