package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saldomental/saldo/config"
	"github.com/saldomental/saldo/middleware"
	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/utils"
)

var testConfigOnce sync.Once

func testSetup(t *testing.T) {
	t.Helper()
	testConfigOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		utils.Logger = zap.NewNop()
		utils.Sugar = utils.Logger.Sugar()
		config.SetForTesting(config.AppConfig{
			JWTSecret:            "test-secret",
			RateLimitPerMinute:   10000,
			CheckinCooldownHours: 24,
			RedisHost:            "127.0.0.1",
			RedisPort:            6379,
		})
	})
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserData{},
		&models.Goal{},
		&models.MoodEntry{},
		&models.QuizResult{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()

	authController := NewAuthController(db)
	quizController := NewQuizController(db)
	checkinController := NewCheckinController(db)
	goalsController := NewGoalsController(db)
	dashboardController := NewDashboardController(db)
	progressController := NewProgressController(db)
	chatController := NewChatController()
	statsController := NewStatsController(db)

	api := r.Group("/api/v1")
	api.GET("/stats", statsController.GetStats)
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.POST("/auth/logout", middleware.AuthRequired(), authController.Logout)
	api.GET("/auth/me", middleware.AuthRequired(), authController.Me)
	api.PATCH("/auth/profile", middleware.AuthRequired(), authController.UpdateProfile)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.GET("/quiz/state", quizController.State)
	protected.POST("/quiz/answer", quizController.Answer)
	protected.POST("/quiz/back", quizController.Back)
	protected.POST("/quiz/restart", quizController.Restart)
	protected.POST("/quiz/advance", quizController.Advance)
	protected.POST("/quiz/offer/accept", quizController.AcceptOffer)
	protected.POST("/quiz/offer/decline", quizController.DeclineOffer)
	protected.POST("/quiz/payment/complete", quizController.CompletePayment)
	protected.POST("/quiz/finalize", quizController.Finalize)
	protected.GET("/quiz/results", quizController.Results)

	protected.POST("/checkin", checkinController.Trigger)
	protected.GET("/checkin/status", checkinController.Status)

	protected.GET("/goals", goalsController.List)
	protected.POST("/goals", goalsController.Create)
	protected.DELETE("/goals/:id", goalsController.Delete)

	protected.GET("/dashboard", dashboardController.Dashboard)
	protected.PATCH("/mood", dashboardController.UpdateMood)
	protected.POST("/balance/add", dashboardController.AddCustomAmount)
	protected.POST("/balance/reset", dashboardController.ResetBalance)

	protected.GET("/progress", progressController.Progress)

	protected.GET("/chat/greeting", chatController.Greeting)
	protected.POST("/chat/message", chatController.Message)

	return r
}

func createTestUser(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", RegisterIP: "test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Email, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return envelope.Data
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}
