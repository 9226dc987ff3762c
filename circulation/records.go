package circulation

import (
	"time"
)

// Version is the optimistic-concurrency token carried by every catalog row.
// Any write touching a row increments it, conditional writes compare it.
type Version = int64

// Role groups persons and defines how many open loans each of them may hold.
type Role struct {
	ID       int64
	Name     string
	Capacity int
	Version  Version
}

// MaterialType is the category label of a Material.
type MaterialType struct {
	ID      int64
	Name    string
	Version Version
}

// Person is someone allowed to borrow materials. Cedula is the identity number, unique across all persons.
type Person struct {
	ID      int64
	Name    string
	Cedula  string
	RoleID  int64
	Version Version
}

// PersonProfile is a Person with its Role resolved.
type PersonProfile struct {
	Person
	RoleName string
	Capacity int
}

// Material is a circulating item.
//
// RegisteredQuantity is the total ever stocked, CurrentQuantity the units available for loan.
// RegisteredQuantity - CurrentQuantity always equals the number of open loans against the material.
type Material struct {
	ID                 int64
	Title              string
	TypeID             int64
	RegisteredAt       time.Time
	RegisteredQuantity int
	CurrentQuantity    int
	Version            Version
}

// MaterialSummary is a Material with its MaterialType name resolved.
type MaterialSummary struct {
	Material
	TypeName string
}

// StockChange is the outcome of adding units to a Material.
type StockChange struct {
	Material
	Increment int
}

// Loan records that a Person borrowed one unit of a Material.
//
// A Loan is immutable except for the single transition Returned false -> true, which also sets ReturnedAt.
type Loan struct {
	ID         int64
	PersonID   int64
	MaterialID int64
	LoanedAt   time.Time
	ReturnedAt *time.Time
	Returned   bool
}

// IsOpen reports whether the loan has not been returned yet.
func (l Loan) IsOpen() bool {
	return !l.Returned
}

// LoanDetails is a Loan with the names of its Person and Material resolved.
// The names are empty when the Person or Material was deleted after the loan was closed.
type LoanDetails struct {
	Loan
	PersonName    string
	PersonCedula  string
	MaterialTitle string
}

// Availability reports how many more loans a Person may open.
// Available may be negative when the role's capacity was lowered after loans were issued.
type Availability struct {
	PersonID    int64
	PersonName  string
	Cedula      string
	RoleName    string
	Capacity    int
	ActiveLoans int
	Available   int
}

// CheckoutState is everything a checkout decision depends on, read in one consistent snapshot.
type CheckoutState struct {
	PersonFound   bool
	Person        PersonProfile
	MaterialFound bool
	Material      Material
	OpenLoans     int
}

// ReturnState is everything a return decision depends on.
type ReturnState struct {
	LoanFound bool
	Loan      Loan
}
