package models

import "time"

// UserData is the per-user progress row: money saved, clean-day streak,
// current mood and the daily savings rate derived from the onboarding quiz.
// LastSavingsClick is the durable source of truth for the check-in cooldown.
type UserData struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	SavedMoney       float64    `gorm:"type:decimal(12,2);default:0" json:"saved_money"`
	DaysClean        int        `gorm:"default:0" json:"days_clean"`
	Mood             int        `gorm:"default:7" json:"mood"`
	DailySavings     float64    `gorm:"type:decimal(12,2);default:0" json:"daily_savings"`
	LastSavingsClick *time.Time `json:"last_savings_click"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
