package types

// AuthContext is the trusted identity resolved from the upstream proxy
// headers (or a bearer token) for the current request.
type AuthContext struct {
	UserID      uint     `json:"userId"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	IsAdmin     bool     `json:"isAdmin"`
	IsCommittee bool     `json:"isCommittee"` // true for COMMITTEE and ADMIN
	GroupIDs    []uint   `json:"groupIds"`
	GroupSlugs  []string `json:"groupSlugs"`
}
