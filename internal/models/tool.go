package models

import "gorm.io/gorm"

type Tool struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description *string
}
