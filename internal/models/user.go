package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	Base

	Name         string `gorm:"size:100;not null" json:"name"`
	Surname      string `gorm:"size:100" json:"surname"`
	Phone        string `gorm:"size:20" json:"phone"`
	Email        string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	AvatarURL    string `gorm:"size:500" json:"avatar_url"`
	Role         string `gorm:"size:20;default:'USER'" json:"role"`

	RegionID *string `gorm:"type:varchar(36);index" json:"region_id"`
	Region   *Region `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"region,omitempty"`

	EmailVerifiedAt *time.Time `json:"email_verified_at"`
}
