package removerole

const (
	commandType = "RemoveRole"
)

// Command represents the intent to remove a role.
type Command struct {
	RoleID int64
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(roleID int64) Command {
	return Command{RoleID: roleID}
}
