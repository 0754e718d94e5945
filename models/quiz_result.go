package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizResult is the immutable hand-off produced when an onboarding quiz
// completes: final wellness score, the derived daily savings rate, the
// chosen plan and the raw answers as JSON.
type QuizResult struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	FinalScore       int       `gorm:"not null" json:"final_score"`
	DailySavings     float64   `gorm:"type:decimal(12,2);default:0" json:"daily_savings"`
	Plan             string    `gorm:"size:16" json:"plan"`
	PaymentCompleted bool      `gorm:"default:false" json:"payment_completed"`
	HasHabit         bool      `gorm:"default:false" json:"has_habit"`
	HabitType        string    `gorm:"size:32" json:"habit_type"`
	Answers          string    `gorm:"type:text" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (r *QuizResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
