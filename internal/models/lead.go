package models

type Lead struct {
	BaseModel
	ActivityID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_lead_activity_parent" json:"activity_id"`
	ParentID   string `gorm:"type:uuid;not null;index;uniqueIndex:idx_lead_activity_parent" json:"parent_id"`
	ChildAge   int    `gorm:"not null" json:"child_age"`
	Message    string `json:"message"`
	Status     LeadStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`

	// Relations
	Activity *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
	Parent   *User     `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
}
