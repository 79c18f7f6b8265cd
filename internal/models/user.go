package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Email string  `gorm:"uniqueIndex;not null"`
	Name  *string // display name forwarded by the auth proxy, may be absent
	Role  string  `gorm:"not null;default:SUBMITTER"`

	// Only set for accounts created through the direct register flow;
	// header-authenticated users never have one.
	PasswordHash string

	// Relationships
	SubmittedUseCases []UseCase         `gorm:"foreignKey:SubmitterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	OwnedUseCases     []UseCase         `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Memberships       []GroupMembership `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
