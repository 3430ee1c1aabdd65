package models

import "time"

type GameRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   string    `gorm:"size:64;not null;index" json:"group_id"`
	Rounds    int       `gorm:"not null" json:"rounds"`
	Players   int       `gorm:"not null" json:"players"`
	WinnerID  string    `gorm:"size:64" json:"winner_id"`
	Winner    string    `gorm:"size:100" json:"winner"`
	TopScore  int       `gorm:"not null;default:0" json:"top_score"`
	Challenge string    `gorm:"size:20" json:"challenge,omitempty"`
	PlayedAt  time.Time `gorm:"not null;index" json:"played_at"`
}
