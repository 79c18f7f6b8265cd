package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/services"
	"github.com/ssaandco/aicatalog/internal/utils"
)

func CreateUseCase(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var input services.CreateUseCaseInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	useCase, err := services.CreateUseCase(input, authCtx.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toUseCaseResponse(useCase))
}

func ListUseCases(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var query services.UseCaseQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	useCases, total, err := services.FindAllUseCases(&query, authCtx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, toUseCaseResponses(useCases), total, query.Page, query.Limit)
}

func GetUseCase(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	useCase, err := services.FindUseCaseByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Hidden rows look identical to missing ones.
	if !services.CanViewUseCase(useCase, authCtx) {
		response.NotFound(c, "Use case not found")
		return
	}

	response.OK(c, toUseCaseResponse(useCase))
}

func UpdateUseCase(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateUseCaseInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	useCase, err := services.UpdateUseCase(id, input, authCtx.UserID, authCtx.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toUseCaseResponse(useCase))
}

func ScoreUseCase(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.ScoreUseCaseInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	useCase, err := services.ScoreUseCase(id, input, authCtx.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toUseCaseResponse(useCase))
}

func DeleteUseCase(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteUseCase(id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Use case deleted successfully"})
}
