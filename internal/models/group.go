package models

import "gorm.io/gorm"

type Group struct {
	gorm.Model

	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"` // stored lowercase

	// Relationships
	Memberships []GroupMembership `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
