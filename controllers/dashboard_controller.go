package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saldomental/saldo/middleware"
	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/streak"
	"github.com/saldomental/saldo/utils"
)

// DashboardController serves the home screen data and balance mutations.
type DashboardController struct {
	db *gorm.DB
}

// NewDashboardController creates a DashboardController.
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

// Dashboard returns the user's data row, goals, cooldown status and
// derived projections in a single payload.
func (d *DashboardController) Dashboard(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	data, err := d.loadOrCreateUserData(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load dashboard")
		return
	}

	var goals []models.Goal
	if err := d.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&goals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load goals")
		return
	}

	now := time.Now()
	window := cooldownWindow()
	remaining := streak.Remaining(now, data.LastSavingsClick, window)

	perDay := 0.0
	if data.DaysClean > 0 {
		perDay = round2(data.SavedMoney / float64(data.DaysClean))
	}

	utils.Success(ctx, gin.H{
		"user_data": data,
		"goals":     goals,
		"checkin": gin.H{
			"can_trigger":       streak.CanTrigger(now, data.LastSavingsClick, window),
			"remaining_display": streak.FormatRemaining(remaining),
		},
		"stats": gin.H{
			"per_day_average":    perDay,
			"monthly_projection": round2(data.DailySavings * 30),
			"annual_projection":  round2(data.DailySavings * 365),
		},
	})
}

// UpdateMood stores the current mood and appends a history entry.
func (d *DashboardController) UpdateMood(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Mood int `json:"mood" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}
	if req.Mood < 1 || req.Mood > 10 {
		utils.Error(ctx, http.StatusBadRequest, 40051, "O humor deve estar entre 1 e 10")
		return
	}

	data, err := d.loadOrCreateUserData(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load user data")
		return
	}

	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(data).Update("mood", req.Mood).Error; err != nil {
			return err
		}
		entry := models.MoodEntry{UserID: userID, Mood: req.Mood}
		return tx.Create(&entry).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to update mood")
		return
	}

	utils.Success(ctx, gin.H{"mood": req.Mood})
}

// AddCustomAmount credits an arbitrary milestone amount to the balance
// and to every goal, bypassing the cooldown.
func (d *DashboardController) AddCustomAmount(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "invalid request payload")
		return
	}
	if req.Amount <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40053, "O valor deve ser maior que zero")
		return
	}

	data, err := d.loadOrCreateUserData(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50054, "failed to load user data")
		return
	}

	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(data).
			Update("saved_money", gorm.Expr("saved_money + ?", req.Amount)).Error; err != nil {
			return err
		}
		return tx.Model(&models.Goal{}).Where("user_id = ?", userID).
			Update("current_amount", gorm.Expr("current_amount + ?", req.Amount)).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50055, "failed to add amount")
		return
	}

	utils.Success(ctx, gin.H{"saved_money": data.SavedMoney + req.Amount})
}

// ResetBalance zeroes the saved money counter. Goals keep their progress.
func (d *DashboardController) ResetBalance(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	data, err := d.loadOrCreateUserData(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50056, "failed to load user data")
		return
	}

	if err := d.db.Model(data).Update("saved_money", 0).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50057, "failed to reset balance")
		return
	}

	utils.Success(ctx, gin.H{"saved_money": 0})
}

func (d *DashboardController) loadOrCreateUserData(userID uint) (*models.UserData, error) {
	var data models.UserData
	err := d.db.Where("user_id = ?", userID).First(&data).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		data = models.UserData{UserID: userID, Mood: 7}
		if err := d.db.Create(&data).Error; err != nil {
			return nil, err
		}
		return &data, nil
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
