package models

import (
	"time"

	"gorm.io/gorm"
)

type UseCase struct {
	gorm.Model

	Name             string `gorm:"not null"`
	Description      string `gorm:"not null"`
	ProblemStatement *string
	ClientProject    *string
	SubmitterID      uint      `gorm:"not null;index"` // fixed at creation, never reassigned
	DateSubmitted    time.Time `gorm:"not null"`

	// Scoring: each axis is 1-5, CompositeScore is derived and never
	// written by clients. It is the mean of the three axes when all are
	// present and nil otherwise.
	BusinessImpact     *int
	Feasibility        *int
	StrategicAlignment *int
	CompositeScore     *float64

	Status          string `gorm:"not null;default:NEW"`
	ApprovalStatus  string `gorm:"not null;default:PENDING_REVIEW"`
	VisibilityScope string `gorm:"not null;default:GENERAL"`
	OwnerID         *uint  `gorm:"index"` // assigned reviewer, may be cleared
	Notes           string

	// Relationships
	Submitter User    `gorm:"foreignKey:SubmitterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Owner     *User   `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Tools     []Tool  `gorm:"many2many:use_case_tools;constraint:OnDelete:CASCADE"`
	Groups    []Group `gorm:"many2many:use_case_groups;constraint:OnDelete:CASCADE"`
}
