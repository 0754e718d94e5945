package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saldomental/saldo/middleware"
	"github.com/saldomental/saldo/models"
	"github.com/saldomental/saldo/utils"
)

// GoalsController manages the user's savings goals.
type GoalsController struct {
	db *gorm.DB
}

// NewGoalsController creates a GoalsController.
func NewGoalsController(db *gorm.DB) *GoalsController {
	return &GoalsController{db: db}
}

var allowedGoalIcons = map[string]bool{
	"target": true,
	"home":   true,
	"car":    true,
	"plane":  true,
	"gift":   true,
	"book":   true,
	"heart":  true,
	"phone":  true,
}

// List returns all goals of the authenticated user, oldest first.
func (g *GoalsController) List(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var goals []models.Goal
	if err := g.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&goals).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to retrieve goals")
		return
	}
	utils.Success(ctx, gin.H{"items": goals})
}

// Create adds a new goal. The goal starts already credited with the money
// saved so far, so progress bars never restart from zero.
func (g *GoalsController) Create(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Name         string  `json:"name" binding:"required"`
		Icon         string  `json:"icon"`
		TargetAmount float64 `json:"target_amount" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "O nome da meta é obrigatório")
		return
	}
	if rs := []rune(name); len(rs) > 80 {
		name = string(rs[:80])
	}
	if req.TargetAmount <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40042, "O valor da meta deve ser maior que zero")
		return
	}

	icon := strings.TrimSpace(req.Icon)
	if !allowedGoalIcons[icon] {
		icon = "target"
	}

	var current float64
	var data models.UserData
	if err := g.db.Where("user_id = ?", userID).First(&data).Error; err == nil {
		current = data.SavedMoney
	}

	goal := models.Goal{
		UserID:        userID,
		Name:          name,
		Icon:          icon,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: current,
	}
	if err := g.db.Create(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to create goal")
		return
	}

	utils.Success(ctx, goal)
}

// Delete removes one of the user's goals.
func (g *GoalsController) Delete(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40043, "missing goal id")
		return
	}

	var goal models.Goal
	if err := g.db.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "goal not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load goal")
		return
	}

	if err := g.db.Delete(&goal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to delete goal")
		return
	}
	utils.Success(ctx, gin.H{"message": "goal deleted"})
}
