package model

import "time"

type Work struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"userId"`
	Company     string `gorm:"type:varchar(255);not null" json:"company"`
	Position    string `gorm:"type:varchar(255);not null" json:"position"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// The table predates the rename of the model; keep the historical name.
func (Work) TableName() string { return "work_experience" }
