package core

// Role identifies the turn author in the canonical request format.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one provider-agnostic conversation turn.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
