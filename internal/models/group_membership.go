package models

import "gorm.io/gorm"

type GroupMembership struct {
	gorm.Model

	UserID  uint `gorm:"not null;uniqueIndex:idx_user_group"`
	GroupID uint `gorm:"not null;uniqueIndex:idx_user_group"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Group Group `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
