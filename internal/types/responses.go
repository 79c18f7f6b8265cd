package types

import "time"

// UserSummary is the embedded shape for submitter/owner references.
type UserSummary struct {
	ID    uint    `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type GroupResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ToolResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UseCaseResponse struct {
	ID                 uint            `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ProblemStatement   *string         `json:"problemStatement"`
	ClientProject      *string         `json:"clientProject"`
	SubmitterID        uint            `json:"submitterId"`
	Submitter          UserSummary     `json:"submitter"`
	DateSubmitted      time.Time       `json:"dateSubmitted"`
	BusinessImpact     *int            `json:"businessImpact"`
	Feasibility        *int            `json:"feasibility"`
	StrategicAlignment *int            `json:"strategicAlignment"`
	CompositeScore     *float64        `json:"compositeScore"`
	Status             string          `json:"status"`
	ApprovalStatus     string          `json:"approvalStatus"`
	VisibilityScope    string          `json:"visibilityScope"`
	OwnerID            *uint           `json:"ownerId"`
	Owner              *UserSummary    `json:"owner"`
	Notes              string          `json:"notes"`
	Tools              []ToolResponse  `json:"tools"`
	Groups             []GroupResponse `json:"groups"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type UserCounts struct {
	SubmittedUseCases int64 `json:"submittedUseCases"`
	OwnedUseCases     int64 `json:"ownedUseCases"`
}

// UserDetail is the admin-facing user record.
type UserDetail struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	Name      *string    `json:"name"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	Counts    UserCounts `json:"counts"`
}

// MeResponse is the current-user payload for GET /api/me.
type MeResponse struct {
	ID          uint            `json:"id"`
	Email       string          `json:"email"`
	Name        *string         `json:"name"`
	Role        string          `json:"role"`
	IsAdmin     bool            `json:"isAdmin"`
	IsCommittee bool            `json:"isCommittee"`
	Groups      []GroupResponse `json:"groups"`
}
