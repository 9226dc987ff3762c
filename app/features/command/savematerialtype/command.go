package savematerialtype

const (
	commandType = "SaveMaterialType"
)

// Command represents the intent to create (TypeID 0) or rename a material type.
type Command struct {
	TypeID int64
	Name   string
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(typeID int64, name string) Command {
	return Command{TypeID: typeID, Name: name}
}
