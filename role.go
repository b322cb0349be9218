package tutor

// Role represents the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ParseRole maps a wire role to a Role. "assistant" is accepted as an
// alias of RoleModel.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "user":
		return RoleUser, true
	case "model", "assistant":
		return RoleModel, true
	default:
		return "", false
	}
}
