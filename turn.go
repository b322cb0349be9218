package tutor

// Turn is one message of a conversation. History is owned by the caller and
// passed in whole on every request.
type Turn struct {
	Role    Role
	Content string
}

// UserTurn returns a Turn authored by the student.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// ModelTurn returns a Turn authored by the model.
func ModelTurn(content string) Turn {
	return Turn{Role: RoleModel, Content: content}
}
