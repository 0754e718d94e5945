package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saldomental/saldo/middleware"
	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/utils"
)

// ProgressController serves streak achievements and mood history.
type ProgressController struct {
	db *gorm.DB
}

// NewProgressController creates a ProgressController.
func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{db: db}
}

type achievement struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Desc     string `json:"description"`
	Unlocked bool   `json:"unlocked"`
}

// Progress returns the unlocked achievements and the last mood entries.
func (p *ProgressController) Progress(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var data models.UserData
	err := p.db.Where("user_id = ?", userID).First(&data).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load progress")
		return
	}

	achievements := []achievement{
		{ID: "day_1", Title: "Primeiro dia", Desc: "1 dia de economia", Unlocked: data.DaysClean >= 1},
		{ID: "week_1", Title: "Uma semana", Desc: "7 dias de economia", Unlocked: data.DaysClean >= 7},
		{ID: "month_1", Title: "Um mês", Desc: "30 dias de economia", Unlocked: data.DaysClean >= 30},
		{ID: "quarter", Title: "Três meses", Desc: "90 dias de economia", Unlocked: data.DaysClean >= 90},
		{ID: "half_year", Title: "Seis meses", Desc: "180 dias de economia", Unlocked: data.DaysClean >= 180},
		{ID: "first_saving", Title: "Primeira economia", Desc: "Guardou o primeiro valor", Unlocked: data.SavedMoney > 0},
	}

	var moods []models.MoodEntry
	if err := p.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(7).Find(&moods).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load mood history")
		return
	}

	utils.Success(ctx, gin.H{
		"days_clean":   data.DaysClean,
		"saved_money":  data.SavedMoney,
		"achievements": achievements,
		"mood_history": moods,
	})
}
