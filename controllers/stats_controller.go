package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/utils"
)

// StatsController provides aggregate service statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

const statsCacheKey = "cache:stats"

// GetStats returns aggregate counters for the service.
func (s *StatsController) GetStats(ctx *gin.Context) {
	// try cache first
	if b, ok := utils.CacheGetBytes(statsCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var userCount int64
	var goalCount int64
	var quizCount int64
	var checkinsToday int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		userCount = 0
	}

	if err := s.db.Model(&models.Goal{}).Count(&goalCount).Error; err != nil {
		goalCount = 0
	}

	if err := s.db.Model(&models.QuizResult{}).Count(&quizCount).Error; err != nil {
		quizCount = 0
	}

	now := time.Now().In(time.Local)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.db.Model(&models.UserData{}).
		Where("last_savings_click >= ?", todayStart).
		Count(&checkinsToday).Error; err != nil {
		checkinsToday = 0
	}

	payload := gin.H{
		"user_count":     userCount,
		"goal_count":     goalCount,
		"quiz_count":     quizCount,
		"checkins_today": checkinsToday,
	}
	// cache wrapper for consistency
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(statsCacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, payload)
}
