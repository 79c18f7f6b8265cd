package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ssaandco/aicatalog/db"
	"github.com/ssaandco/aicatalog/internal/apperr"
	"github.com/ssaandco/aicatalog/internal/models"
)

type CreateToolInput struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description"`
}

type UpdateToolInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

type ToolQuery struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=50" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
}

func CreateTool(input CreateToolInput) (*models.Tool, error) {
	tool := models.Tool{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := db.DB.Create(&tool).Error; err != nil {
		return nil, apperr.Internal("Failed to create tool", err)
	}

	return &tool, nil
}

// FindAllTools lists tools alphabetically with optional case-insensitive
// substring search over name and description.
func FindAllTools(query *ToolQuery) ([]models.Tool, int64, error) {
	normalizeQuery(&query.Page, &query.Limit, 50)

	filter := func(tx *gorm.DB) *gorm.DB {
		if query.Search != "" {
			pattern := "%" + strings.ToLower(query.Search) + "%"
			tx = tx.Where(db.DB.
				Where("LOWER(name) LIKE ?", pattern).
				Or("LOWER(description) LIKE ?", pattern))
		}
		return tx
	}

	var total int64

	if err := db.DB.Model(&models.Tool{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("Failed to count tools", err)
	}

	var tools []models.Tool

	err := db.DB.Scopes(filter).
		Order("name ASC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&tools).Error

	if err != nil {
		return nil, 0, apperr.Internal("Failed to list tools", err)
	}

	return tools, total, nil
}

func FindToolByID(id uint) (*models.Tool, error) {
	var tool models.Tool

	if err := db.DB.First(&tool, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Tool not found")
		}
		return nil, apperr.Internal("Failed to fetch tool", err)
	}

	return &tool, nil
}

func UpdateTool(id uint, input UpdateToolInput) (*models.Tool, error) {
	tool, err := FindToolByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		if err := db.DB.Model(tool).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("Failed to update tool", err)
		}
	}

	return FindToolByID(id)
}

// DeleteTool removes the tool and any use-case associations pointing at it.
func DeleteTool(id uint) error {
	if _, err := FindToolByID(id); err != nil {
		return err
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tool_id = ?", id).Delete(&models.UseCaseTool{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Tool{}, id).Error
	})

	if err != nil {
		return apperr.Internal("Failed to delete tool", err)
	}

	return nil
}
