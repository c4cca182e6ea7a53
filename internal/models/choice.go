package models

import (
	"time"
)

type Choice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Text       string    `gorm:"size:200;not null" json:"text"`
	Votes      int       `gorm:"default:0;not null" json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}
