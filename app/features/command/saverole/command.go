package saverole

const (
	commandType = "SaveRole"
)

// Command represents the intent to create (RoleID 0) or edit a role.
type Command struct {
	RoleID   int64
	Name     string
	Capacity int
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(roleID int64, name string, capacity int) Command {
	return Command{RoleID: roleID, Name: name, Capacity: capacity}
}
