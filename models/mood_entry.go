package models

import "time"

// MoodEntry records one mood check-in (1-10) so the progress screen can
// chart recent history.
type MoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Mood      int       `gorm:"not null" json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}
