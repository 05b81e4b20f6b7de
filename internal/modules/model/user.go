package model

import (
	"time"

	"gorm.io/datatypes"
)

// User is the aggregate root. All access to the child collections goes
// through it; deleting a user cascades to every child row.
type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`

	// Skills is stored inline as a JSON array, not as a child table.
	// Set semantics: AddSkill dedups on insert.
	Skills datatypes.JSONSlice[string] `swaggertype:"array,string" json:"skills"`

	GithubLink    string `gorm:"type:varchar(255)" json:"githubLink,omitempty"`
	LinkedinLink  string `gorm:"type:varchar(255)" json:"linkedinLink,omitempty"`
	PortfolioLink string `gorm:"type:varchar(255)" json:"portfolioLink,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	// User <-> Project
	Projects []Project `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"projects"`

	// User <-> Work
	WorkHistory []Work `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"workHistory"`

	// User <-> Education
	Education []Education `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"education"`
}

func (User) TableName() string { return "users" }
