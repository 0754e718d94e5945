package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saldomental/saldo/config"
	"github.com/saldomental/saldo/middleware"
	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/streak"
	"github.com/saldomental/saldo/utils"
)

// CheckinController handles the daily savings register endpoints. The
// database row is the source of truth for the cooldown; redis only caches
// the last trigger time for cheap status reads.
type CheckinController struct {
	db *gorm.DB
}

var errCooldownActive = errors.New("cooldown still active")

// NewCheckinController creates a new controller instance.
func NewCheckinController(db *gorm.DB) *CheckinController {
	return &CheckinController{db: db}
}

// lockForUpdate takes a row lock where the dialect supports it. SQLite has
// no row locks; its writes serialize on the database lock instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func cooldownWindow() time.Duration {
	hours := config.Get().CheckinCooldownHours
	if hours <= 0 {
		return streak.DefaultWindow
	}
	return time.Duration(hours) * time.Hour
}

// Trigger registers one day of savings: increments the clean-day counter,
// credits the daily rate to the balance and to every active goal, and
// stamps the cooldown. Rejected while the window has not elapsed.
func (c *CheckinController) Trigger(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	window := cooldownWindow()

	var data models.UserData
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("user_id = ?", userID).First(&data).Error; err != nil {
			return err
		}

		if !streak.CanTrigger(now, data.LastSavingsClick, window) {
			return errCooldownActive
		}

		data.DaysClean++
		data.SavedMoney += data.DailySavings
		data.LastSavingsClick = &now

		if err := tx.Save(&data).Error; err != nil {
			return err
		}

		if data.DailySavings > 0 {
			if err := tx.Model(&models.Goal{}).Where("user_id = ?", userID).
				Update("current_amount", gorm.Expr("current_amount + ?", data.DailySavings)).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errCooldownActive) {
			remaining := streak.Remaining(now, data.LastSavingsClick, window)
			utils.Error(ctx, http.StatusTooManyRequests, 42930, "Aguarde "+streak.FormatRemaining(remaining)+" para registrar novamente")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "complete o questionário primeiro")
			return
		}
		utils.Sugar.Errorf("checkin for user %d failed: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to register savings")
		return
	}

	// Display cache only; a miss falls back to the database row.
	utils.CacheCheckin(userID, now, window)

	utils.Success(ctx, gin.H{
		"message":       "Economia registrada!",
		"days_clean":    data.DaysClean,
		"saved_money":   data.SavedMoney,
		"amount_added":  data.DailySavings,
		"next_click_at": now.Add(window),
	})
}

// Status reports whether the button is available and how long remains.
func (c *CheckinController) Status(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	now := time.Now()
	window := cooldownWindow()

	var last *time.Time
	var data models.UserData
	err := c.db.Where("user_id = ?", userID).First(&data).Error
	switch {
	case err == nil:
		last = data.LastSavingsClick
	case errors.Is(err, gorm.ErrRecordNotFound):
		if cached, ok := utils.CachedCheckin(userID); ok {
			last = &cached
		}
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load status")
		return
	}

	can := streak.CanTrigger(now, last, window)
	remaining := streak.Remaining(now, last, window)
	if can {
		utils.ClearCheckin(userID)
	}

	utils.Success(ctx, gin.H{
		"can_trigger":       can,
		"remaining_seconds": int(remaining / time.Second),
		"remaining_display": streak.FormatRemaining(remaining),
		"last_click_at":     last,
	})
}
