package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ssaandco/aicatalog/internal/models"
	"github.com/ssaandco/aicatalog/internal/response"
	"github.com/ssaandco/aicatalog/internal/types"
)

// parseIDParam reads a numeric route parameter, responding 400 itself when
// the value is not a valid id.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}

	return uint(id), true
}

// bindErrorMessage surfaces the first validation failure as a readable
// message, per the API's single-error contract.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return "Invalid email address"
		case "oneof":
			return fe.Field() + " must be one of: " + fe.Param()
		case "min", "max":
			return fe.Field() + " is out of range"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "Invalid request body"
}

func toUserSummary(u *models.User) types.UserSummary {
	return types.UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func toGroupResponse(g *models.Group) types.GroupResponse {
	return types.GroupResponse{
		ID:   g.ID,
		Name: g.Name,
		Slug: g.Slug,
	}
}

func toToolResponse(t *models.Tool) types.ToolResponse {
	return types.ToolResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toToolResponses(tools []models.Tool) []types.ToolResponse {
	out := make([]types.ToolResponse, 0, len(tools))
	for i := range tools {
		out = append(out, toToolResponse(&tools[i]))
	}
	return out
}

func toGroupResponses(groups []models.Group) []types.GroupResponse {
	out := make([]types.GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toGroupResponse(&groups[i]))
	}
	return out
}

func toUseCaseResponse(uc *models.UseCase) types.UseCaseResponse {
	resp := types.UseCaseResponse{
		ID:                 uc.ID,
		Name:               uc.Name,
		Description:        uc.Description,
		ProblemStatement:   uc.ProblemStatement,
		ClientProject:      uc.ClientProject,
		SubmitterID:        uc.SubmitterID,
		Submitter:          toUserSummary(&uc.Submitter),
		DateSubmitted:      uc.DateSubmitted,
		BusinessImpact:     uc.BusinessImpact,
		Feasibility:        uc.Feasibility,
		StrategicAlignment: uc.StrategicAlignment,
		CompositeScore:     uc.CompositeScore,
		Status:             uc.Status,
		ApprovalStatus:     uc.ApprovalStatus,
		VisibilityScope:    uc.VisibilityScope,
		OwnerID:            uc.OwnerID,
		Notes:              uc.Notes,
		Tools:              toToolResponses(uc.Tools),
		Groups:             toGroupResponses(uc.Groups),
		CreatedAt:          uc.CreatedAt,
		UpdatedAt:          uc.UpdatedAt,
	}

	if uc.Owner != nil {
		owner := toUserSummary(uc.Owner)
		resp.Owner = &owner
	}

	return resp
}

func toUseCaseResponses(useCases []models.UseCase) []types.UseCaseResponse {
	out := make([]types.UseCaseResponse, 0, len(useCases))
	for i := range useCases {
		out = append(out, toUseCaseResponse(&useCases[i]))
	}
	return out
}
