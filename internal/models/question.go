package models

import (
	"time"
)

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:200;not null" json:"text"`
	PubDate   time.Time `gorm:"not null;index" json:"pub_date"` // publication time, may be in the future
	Choices   []Choice  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"choices"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WasPublishedRecently reports whether the question was published within
// the last 24 hours. Future publication dates do not count as recent.
func (q *Question) WasPublishedRecently() bool {
	now := time.Now()
	return !q.PubDate.Before(now.Add(-24*time.Hour)) && !q.PubDate.After(now)
}

// IsHidden reports whether the question should be invisible to regular
// visitors: either it is scheduled for the future or it has no choices
// to vote on. Choices must be preloaded before calling this.
func (q *Question) IsHidden() bool {
	return q.PubDate.After(time.Now()) || len(q.Choices) == 0
}
