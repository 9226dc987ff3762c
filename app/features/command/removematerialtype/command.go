package removematerialtype

const (
	commandType = "RemoveMaterialType"
)

// Command represents the intent to remove a material type.
type Command struct {
	TypeID int64
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(typeID int64) Command {
	return Command{TypeID: typeID}
}
