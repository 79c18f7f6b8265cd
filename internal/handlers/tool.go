package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/services"
)

func CreateTool(c *gin.Context) {
	var input services.CreateToolInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	tool, err := services.CreateTool(input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toToolResponse(tool))
}

func ListTools(c *gin.Context) {
	var query services.ToolQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	tools, total, err := services.FindAllTools(&query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, toToolResponses(tools), total, query.Page, query.Limit)
}

func GetTool(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tool, err := services.FindToolByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toToolResponse(tool))
}

func UpdateTool(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateToolInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	tool, err := services.UpdateTool(id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toToolResponse(tool))
}

func DeleteTool(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteTool(id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Tool deleted successfully"})
}
