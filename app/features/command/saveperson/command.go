package saveperson

const (
	commandType = "SavePerson"
)

// Command represents the intent to register (PersonID 0) or edit a person.
type Command struct {
	PersonID int64
	Name     string
	Cedula   string
	RoleID   int64
}

// CommandType returns the type identifier for this command, used for observability.
func (c Command) CommandType() string {
	return commandType
}

// IsRegistration reports whether the command creates a new person.
func (c Command) IsRegistration() bool {
	return c.PersonID == 0
}

// BuildRegisterCommand creates a Command for a new person.
func BuildRegisterCommand(name, cedula string, roleID int64) Command {
	return Command{Name: name, Cedula: cedula, RoleID: roleID}
}

// BuildUpdateCommand creates a Command that edits the person with the given id.
func BuildUpdateCommand(personID int64, name, cedula string, roleID int64) Command {
	return Command{PersonID: personID, Name: name, Cedula: cedula, RoleID: roleID}
}
