package models

import "time"

// Prediction is one classification outcome as persisted by the prediction store.
type Prediction struct {
	ID                   uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	URL                  string    `gorm:"column:url;size:2048;not null" json:"url"`
	Verdict              string    `gorm:"column:prediction;size:512;not null" json:"prediction"`
	LegitimateSuggestion *string   `gorm:"column:legitimate_suggestion;size:2048" json:"legitimate_suggestion"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Prediction) TableName() string { return "predictions" }
