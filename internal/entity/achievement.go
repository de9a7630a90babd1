package entity

import "time"

type AchievementUnlock struct {
	UserID        string `gorm:"primaryKey"`
	AchievementID string `gorm:"primaryKey"`
	UnlockedAt    time.Time
	WasNotified   bool
}
