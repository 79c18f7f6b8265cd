package models

// UseCaseGroup links a GROUP-scoped use case to the groups allowed to see
// it. Same full-replace semantics as UseCaseTool.
type UseCaseGroup struct {
	UseCaseID uint `gorm:"primaryKey"`
	GroupID   uint `gorm:"primaryKey"`
}
