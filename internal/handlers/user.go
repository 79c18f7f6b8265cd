package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/services"
	"github.com/ssaandco/aicatalog/internal/utils"
)

func ListUsers(c *gin.Context) {
	var query services.UserQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	users, total, err := services.FindAllUsers(&query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, users, total, query.Page, query.Limit)
}

func GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := services.FindUserByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

func UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateUserInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	user, err := services.UpdateUser(id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

func DeleteUser(c *gin.Context) {
	authCtx, err := utils.GetAuthContext(c)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if authCtx.UserID == id {
		response.BadRequest(c, "Cannot delete your own account")
		return
	}

	if err := services.DeleteUser(id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "User deleted successfully"})
}

// ListOwnerCandidates returns COMMITTEE and ADMIN users for reviewer
// assignment.
func ListOwnerCandidates(c *gin.Context) {
	users, err := services.FindOwnerCandidates()
	if err != nil {
		response.Error(c, err)
		return
	}

	candidates := make([]gin.H, 0, len(users))
	for i := range users {
		candidates = append(candidates, gin.H{
			"id":    users[i].ID,
			"name":  users[i].Name,
			"email": users[i].Email,
			"role":  users[i].Role,
		})
	}

	response.OK(c, candidates)
}
