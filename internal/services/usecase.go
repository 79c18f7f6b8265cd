package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/types"
)

type CreateUseCaseInput struct {
	Name             string  `json:"name" binding:"required,max=200"`
	Description      string  `json:"description" binding:"required"`
	ProblemStatement *string `json:"problemStatement"`
	ClientProject    *string `json:"clientProject" binding:"omitempty,max=200"`
	VisibilityScope  string  `json:"visibilityScope" binding:"omitempty,oneof=PRIVATE GROUP GENERAL"`
	ToolIDs          []uint  `json:"toolIds"`
	GroupIDs         []uint  `json:"groupIds"`
}

// UpdateUseCaseInput supports partial updates; nil pointers leave the field
// unchanged. ToolIDs/GroupIDs distinguish "absent" (keep associations) from
// "empty" (remove all) through the pointer-to-slice.
type UpdateUseCaseInput struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description      *string `json:"description" binding:"omitempty,min=1"`
	ProblemStatement *string `json:"problemStatement"`
	ClientProject    *string `json:"clientProject" binding:"omitempty,max=200"`
	Status           *string `json:"status" binding:"omitempty,oneof=NEW IN_PROGRESS COMPLETED"`
	VisibilityScope  *string `json:"visibilityScope" binding:"omitempty,oneof=PRIVATE GROUP GENERAL"`
	Notes            *string `json:"notes"`
	ToolIDs          *[]uint `json:"toolIds"`
	GroupIDs         *[]uint `json:"groupIds"`
}

type ScoreUseCaseInput struct {
	BusinessImpact     *int               `json:"businessImpact" binding:"omitempty,min=1,max=5"`
	Feasibility        *int               `json:"feasibility" binding:"omitempty,min=1,max=5"`
	StrategicAlignment *int               `json:"strategicAlignment" binding:"omitempty,min=1,max=5"`
	ApprovalStatus     *string            `json:"approvalStatus" binding:"omitempty,oneof=PENDING_REVIEW APPROVED ON_HOLD REJECTED"`
	OwnerID            types.OptionalUint `json:"ownerId"`
	Notes              *string            `json:"notes"`
}

type UseCaseQuery struct {
	Page           int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit          int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Search         string `form:"search"`
	Status         string `form:"status" binding:"omitempty,oneof=NEW IN_PROGRESS COMPLETED"`
	ApprovalStatus string `form:"approvalStatus" binding:"omitempty,oneof=PENDING_REVIEW APPROVED ON_HOLD REJECTED"`
	SubmitterID    uint   `form:"submitterId"`
	OwnerID        uint   `form:"ownerId"`
	SortBy         string `form:"sortBy,default=dateSubmitted" binding:"omitempty,oneof=dateSubmitted compositeScore name createdAt"`
	SortOrder      string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}

// CompositeScore returns the mean of the three scoring axes, or nil when
// any axis is missing.
func CompositeScore(businessImpact, feasibility, strategicAlignment *int) *float64 {
	if businessImpact == nil || feasibility == nil || strategicAlignment == nil {
		return nil
	}
	mean := float64(*businessImpact+*feasibility+*strategicAlignment) / 3
	return &mean
}

// CreateUseCase inserts a use case for the submitter along with any tool and
// group associations. The row and its joins succeed or fail together.
func CreateUseCase(input CreateUseCaseInput, submitterID uint) (*models.UseCase, error) {
	useCase := models.UseCase{
		Name:             input.Name,
		Description:      input.Description,
		ProblemStatement: input.ProblemStatement,
		ClientProject:    input.ClientProject,
		SubmitterID:      submitterID,
		DateSubmitted:    time.Now().UTC(),
		Status:           types.StatusNew,
		ApprovalStatus:   types.ApprovalPendingReview,
		VisibilityScope:  types.VisibilityGeneral,
	}

	if input.VisibilityScope != "" {
		useCase.VisibilityScope = input.VisibilityScope
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&useCase).Error; err != nil {
			return err
		}

		if len(input.ToolIDs) > 0 {
			if err := replaceUseCaseTools(tx, useCase.ID, input.ToolIDs); err != nil {
				return err
			}
		}

		if len(input.GroupIDs) > 0 {
			if err := replaceUseCaseGroups(tx, useCase.ID, input.GroupIDs); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, wrapWriteError(err, "Failed to create use case")
	}

	return FindUseCaseByID(useCase.ID)
}

// FindAllUseCases lists use cases the caller may see, filtered, sorted, and
// paginated, returning the page and the total match count.
func FindAllUseCases(query *UseCaseQuery, authCtx *types.AuthContext) ([]models.UseCase, int64, error) {
	normalizeQuery(&query.Page, &query.Limit, 10)

	filter := useCaseFilter(query, authCtx)

	var total int64

	if err := db.DB.Model(&models.UseCase{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("Failed to count use cases", err)
	}

	var useCases []models.UseCase

	err := db.DB.Model(&models.UseCase{}).
		Scopes(filter).
		Preload("Submitter").
		Preload("Owner").
		Preload("Tools").
		Preload("Groups").
		Order(orderClause(query.SortBy, query.SortOrder)).
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&useCases).Error

	if err != nil {
		return nil, 0, apperr.Internal("Failed to list use cases", err)
	}

	return useCases, total, nil
}

func FindUseCaseByID(id uint) (*models.UseCase, error) {
	var useCase models.UseCase

	err := db.DB.
		Preload("Submitter").
		Preload("Owner").
		Preload("Tools").
		Preload("Groups").
		First(&useCase, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Use case not found")
		}
		return nil, apperr.Internal("Failed to fetch use case", err)
	}

	return &useCase, nil
}

// UpdateUseCase applies a partial update. Only the original submitter or a
// COMMITTEE/ADMIN caller may edit. When ToolIDs or GroupIDs are present the
// association set is replaced wholesale inside the same transaction.
func UpdateUseCase(id uint, input UpdateUseCaseInput, callerID uint, callerRole string) (*models.UseCase, error) {
	useCase, err := FindUseCaseByID(id)
	if err != nil {
		return nil, err
	}

	isSubmitter := useCase.SubmitterID == callerID
	canEditAny := callerRole == types.RoleCommittee || callerRole == types.RoleAdmin

	if !isSubmitter && !canEditAny {
		return nil, apperr.Forbidden("You do not have permission to edit this use case")
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ProblemStatement != nil {
		updates["problem_statement"] = *input.ProblemStatement
	}
	if input.ClientProject != nil {
		updates["client_project"] = *input.ClientProject
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.VisibilityScope != nil {
		updates["visibility_scope"] = *input.VisibilityScope
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.UseCase{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.ToolIDs != nil {
			if err := replaceUseCaseTools(tx, id, *input.ToolIDs); err != nil {
				return err
			}
		}

		if input.GroupIDs != nil {
			if err := replaceUseCaseGroups(tx, id, *input.GroupIDs); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, wrapWriteError(err, "Failed to update use case")
	}

	return FindUseCaseByID(id)
}

// ScoreUseCase merges supplied score fields over stored values, recomputes
// the composite, and applies approval/owner/notes changes. COMMITTEE and
// ADMIN only. OwnerID set to JSON null clears the assigned reviewer.
func ScoreUseCase(id uint, input ScoreUseCaseInput, callerRole string) (*models.UseCase, error) {
	if callerRole != types.RoleCommittee && callerRole != types.RoleAdmin {
		return nil, apperr.Forbidden("Only committee members and admins can score use cases")
	}

	useCase, err := FindUseCaseByID(id)
	if err != nil {
		return nil, err
	}

	businessImpact := useCase.BusinessImpact
	feasibility := useCase.Feasibility
	strategicAlignment := useCase.StrategicAlignment

	if input.BusinessImpact != nil {
		businessImpact = input.BusinessImpact
	}
	if input.Feasibility != nil {
		feasibility = input.Feasibility
	}
	if input.StrategicAlignment != nil {
		strategicAlignment = input.StrategicAlignment
	}

	updates := map[string]interface{}{
		"composite_score": CompositeScore(businessImpact, feasibility, strategicAlignment),
	}

	if input.BusinessImpact != nil {
		updates["business_impact"] = *input.BusinessImpact
	}
	if input.Feasibility != nil {
		updates["feasibility"] = *input.Feasibility
	}
	if input.StrategicAlignment != nil {
		updates["strategic_alignment"] = *input.StrategicAlignment
	}
	if input.ApprovalStatus != nil {
		updates["approval_status"] = *input.ApprovalStatus
	}
	if input.OwnerID.Present {
		updates["owner_id"] = input.OwnerID.Value
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	if err := db.DB.Model(&models.UseCase{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, wrapWriteError(err, "Failed to score use case")
	}

	return FindUseCaseByID(id)
}

// DeleteUseCase removes a use case and its association rows.
func DeleteUseCase(id uint) error {
	if _, err := FindUseCaseByID(id); err != nil {
		return err
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("use_case_id = ?", id).Delete(&models.UseCaseTool{}).Error; err != nil {
			return err
		}
		if err := tx.Where("use_case_id = ?", id).Delete(&models.UseCaseGroup{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.UseCase{}, id).Error
	})

	if err != nil {
		return apperr.Internal("Failed to delete use case", err)
	}

	return nil
}

// CanViewUseCase applies the visibility rule to a single row: admins see
// everything, submitters see their own, GENERAL is open, GROUP requires a
// shared group.
func CanViewUseCase(useCase *models.UseCase, authCtx *types.AuthContext) bool {
	if authCtx == nil {
		return false
	}
	if authCtx.IsAdmin || useCase.SubmitterID == authCtx.UserID {
		return true
	}

	switch useCase.VisibilityScope {
	case types.VisibilityGeneral:
		return true
	case types.VisibilityGroup:
		for _, group := range useCase.Groups {
			for _, id := range authCtx.GroupIDs {
				if group.ID == id {
					return true
				}
			}
		}
	}

	return false
}

// useCaseFilter builds the shared predicate for listing and counting:
// visibility scoping for non-admins, free-text search, and exact filters.
func useCaseFilter(query *UseCaseQuery, authCtx *types.AuthContext) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if authCtx != nil && !authCtx.IsAdmin {
			visibility := db.DB.
				Where("use_cases.submitter_id = ?", authCtx.UserID).
				Or("use_cases.visibility_scope = ?", types.VisibilityGeneral)

			if len(authCtx.GroupIDs) > 0 {
				groupScoped := db.DB.Model(&models.UseCaseGroup{}).
					Select("use_case_id").
					Where("group_id IN ?", authCtx.GroupIDs)
				visibility = visibility.Or(
					"use_cases.visibility_scope = ? AND use_cases.id IN (?)",
					types.VisibilityGroup, groupScoped,
				)
			}

			tx = tx.Where(visibility)
		}

		if query.Search != "" {
			pattern := "%" + strings.ToLower(query.Search) + "%"
			tx = tx.Where(db.DB.
				Where("LOWER(use_cases.name) LIKE ?", pattern).
				Or("LOWER(use_cases.description) LIKE ?", pattern).
				Or("LOWER(use_cases.problem_statement) LIKE ?", pattern).
				Or("LOWER(use_cases.client_project) LIKE ?", pattern))
		}

		if query.Status != "" {
			tx = tx.Where("use_cases.status = ?", query.Status)
		}
		if query.ApprovalStatus != "" {
			tx = tx.Where("use_cases.approval_status = ?", query.ApprovalStatus)
		}
		if query.SubmitterID != 0 {
			tx = tx.Where("use_cases.submitter_id = ?", query.SubmitterID)
		}
		if query.OwnerID != 0 {
			tx = tx.Where("use_cases.owner_id = ?", query.OwnerID)
		}

		return tx
	}
}

var useCaseSortColumns = map[string]string{
	"dateSubmitted":  "date_submitted",
	"compositeScore": "composite_score",
	"name":           "name",
	"createdAt":      "created_at",
}

func orderClause(sortBy, sortOrder string) string {
	column, ok := useCaseSortColumns[sortBy]
	if !ok {
		column = "date_submitted"
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return column + " " + direction
}

// replaceUseCaseTools implements the full-replace association semantic:
// delete every join row for the use case, then insert the new set.
func replaceUseCaseTools(tx *gorm.DB, useCaseID uint, toolIDs []uint) error {
	if err := tx.Where("use_case_id = ?", useCaseID).Delete(&models.UseCaseTool{}).Error; err != nil {
		return err
	}

	if len(toolIDs) == 0 {
		return nil
	}

	rows := make([]models.UseCaseTool, 0, len(toolIDs))
	for _, toolID := range toolIDs {
		rows = append(rows, models.UseCaseTool{UseCaseID: useCaseID, ToolID: toolID})
	}

	return tx.Create(&rows).Error
}

func replaceUseCaseGroups(tx *gorm.DB, useCaseID uint, groupIDs []uint) error {
	if err := tx.Where("use_case_id = ?", useCaseID).Delete(&models.UseCaseGroup{}).Error; err != nil {
		return err
	}

	if len(groupIDs) == 0 {
		return nil
	}

	rows := make([]models.UseCaseGroup, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		rows = append(rows, models.UseCaseGroup{UseCaseID: useCaseID, GroupID: groupID})
	}

	return tx.Create(&rows).Error
}
