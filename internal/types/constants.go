package types

// Roles, ordered by privilege. The auth resolver only ever promotes a
// stored role upward, never demotes it.
const (
	RoleSubmitter = "SUBMITTER"
	RoleCommittee = "COMMITTEE"
	RoleAdmin     = "ADMIN"
)

const (
	StatusNew        = "NEW"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

const (
	ApprovalPendingReview = "PENDING_REVIEW"
	ApprovalApproved      = "APPROVED"
	ApprovalOnHold        = "ON_HOLD"
	ApprovalRejected      = "REJECTED"
)

const (
	VisibilityPrivate = "PRIVATE"
	VisibilityGroup   = "GROUP"
	VisibilityGeneral = "GENERAL"
)

// Gin context keys.
const (
	ContextAuthKey      = "auth"
	ContextRequestIDKey = "request_id"
)

var roleRank = map[string]int{
	RoleSubmitter: 0,
	RoleCommittee: 1,
	RoleAdmin:     2,
}

// RoleRank returns the privilege order of a role; unknown roles rank lowest.
func RoleRank(role string) int {
	return roleRank[role]
}
