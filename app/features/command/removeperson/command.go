package removeperson

const (
	commandType = "RemovePerson"
)

// Command represents the intent to remove a person.
type Command struct {
	PersonID int64
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(personID int64) Command {
	return Command{PersonID: personID}
}
