package models

import "time"

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`

	// Relations
	School        *School        `gorm:"foreignKey:CreatedBy" json:"-"`
	Leads         []Lead         `gorm:"foreignKey:ParentID" json:"-"`
	Reviews       []Review       `gorm:"foreignKey:ParentID" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
