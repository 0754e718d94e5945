package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a savings target owned by a user. CurrentAmount starts at the
// user's saved balance when the goal is created and is credited with the
// daily savings rate on every successful check-in.
type Goal struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	Name          string    `gorm:"size:128;not null" json:"name"`
	Icon          string    `gorm:"size:32;default:'target'" json:"icon"`
	TargetAmount  float64   `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	CurrentAmount float64   `gorm:"type:decimal(12,2);default:0" json:"current_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
