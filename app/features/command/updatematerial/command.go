package updatematerial

const (
	commandType = "UpdateMaterial"
)

// Command represents the intent to edit a material.
type Command struct {
	MaterialID         int64
	Title              string
	TypeID             int64
	RegisteredQuantity int
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(materialID int64, title string, typeID int64, registeredQuantity int) Command {
	return Command{
		MaterialID:         materialID,
		Title:              title,
		TypeID:             typeID,
		RegisteredQuantity: registeredQuantity,
	}
}
