package models

type Review struct {
	BaseModel
	SchoolID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_school_parent" json:"school_id"`
	ParentID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_school_parent" json:"parent_id"`
	Rating   int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment  string `json:"comment"`

	// Relations
	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Parent *User   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
}
