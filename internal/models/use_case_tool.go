package models

// UseCaseTool is the join row behind the UseCase.Tools association. The
// whole set for a use case is replaced on every update that names tools;
// no incremental diffing, no history.
type UseCaseTool struct {
	UseCaseID uint `gorm:"primaryKey"`
	ToolID    uint `gorm:"primaryKey"`
}
