package models

type Activity struct {
	BaseModel
	// SchoolID пустой для родительских заявок, еще не привязанных к школе
	SchoolID     *string          `gorm:"type:uuid;index" json:"school_id"`
	Title        string           `gorm:"not null" json:"title"`
	Description  string           `json:"description"`
	Category     ActivityCategory `gorm:"type:varchar(30);not null;index" json:"category"`
	AgeMin       int              `gorm:"not null" json:"age_min"`
	AgeMax       int              `gorm:"not null" json:"age_max"`
	PriceMonthly *float64         `json:"price_monthly"`
	Active       bool             `gorm:"default:true" json:"active"`
	Verified     bool             `gorm:"default:false" json:"verified"`
	CreatedBy    string           `gorm:"type:uuid;not null" json:"created_by"`
	Source       ActivitySource   `gorm:"type:varchar(20);not null" json:"source"`

	// Relations
	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Leads  []Lead  `gorm:"foreignKey:ActivityID" json:"-"`
}
