package removematerial

const (
	commandType = "RemoveMaterial"
)

// Command represents the intent to remove a material from the catalog.
type Command struct {
	MaterialID int64
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(materialID int64) Command {
	return Command{MaterialID: materialID}
}
