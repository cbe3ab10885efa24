package models

type School struct {
	BaseModel
	Name           string   `gorm:"not null" json:"name"`
	Description    string   `json:"description"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	City           string   `gorm:"not null;index" json:"city"`
	Address        string   `json:"address"`
	NeighborhoodID *string  `gorm:"type:uuid;index" json:"neighborhood_id"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	Verified       bool     `gorm:"default:false" json:"verified"`
	// Один школьный аккаунт владеет максимум одной школой
	CreatedBy string `gorm:"type:uuid;not null;uniqueIndex" json:"created_by"`

	// Relations
	Neighborhood *Neighborhood `gorm:"foreignKey:NeighborhoodID" json:"neighborhood,omitempty"`
	Activities   []Activity    `gorm:"foreignKey:SchoolID" json:"-"`
	Reviews      []Review      `gorm:"foreignKey:SchoolID" json:"-"`
}
