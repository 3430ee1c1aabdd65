package models

import "time"

type GroupStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   string    `gorm:"size:64;not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_group_user" json:"user_id"`
	Nickname  string    `gorm:"size:100;not null" json:"nickname"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	Wins      int       `gorm:"not null;default:0" json:"wins"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
