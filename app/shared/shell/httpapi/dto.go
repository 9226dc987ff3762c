package httpapi

import (
	"time"

	"github.com/bibliotecago/library-circulation-go/app/features/query/circulationjournal"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

type materialRequest struct {
	Title    string `json:"title" validate:"required"`
	TypeID   int64  `json:"typeId" validate:"gt=0"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

type stockRequest struct {
	Amount int `json:"amount" validate:"gt=0"`
}

type personRequest struct {
	Name   string `json:"name" validate:"required"`
	Cedula string `json:"cedula" validate:"required"`
	RoleID int64  `json:"roleId" validate:"gt=0"`
}

type roleRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity *int   `json:"capacity" validate:"required,gte=0"`
}

type materialTypeRequest struct {
	Name string `json:"name" validate:"required"`
}

type checkoutRequest struct {
	PersonID   int64 `json:"personId" validate:"gt=0"`
	MaterialID int64 `json:"materialId" validate:"gt=0"`
}

type returnRequest struct {
	LoanID int64 `json:"loanId" validate:"gt=0"`
}

type materialResponse struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	TypeID             int64     `json:"typeId"`
	TypeName           string    `json:"typeName,omitempty"`
	RegisteredAt       time.Time `json:"registeredAt"`
	RegisteredQuantity int       `json:"registeredQuantity"`
	CurrentQuantity    int       `json:"currentQuantity"`
}

func toMaterialResponse(m circulation.MaterialSummary) materialResponse {
	return materialResponse{
		ID:                 m.ID,
		Title:              m.Title,
		TypeID:             m.TypeID,
		TypeName:           m.TypeName,
		RegisteredAt:       m.RegisteredAt,
		RegisteredQuantity: m.RegisteredQuantity,
		CurrentQuantity:    m.CurrentQuantity,
	}
}

type stockResponse struct {
	materialResponse
	Increment int `json:"increment"`
}

type personResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Cedula   string `json:"cedula"`
	RoleID   int64  `json:"roleId"`
	RoleName string `json:"roleName"`
	Capacity int    `json:"capacity"`
}

func toPersonResponse(p circulation.PersonProfile) personResponse {
	return personResponse{
		ID:       p.ID,
		Name:     p.Name,
		Cedula:   p.Cedula,
		RoleID:   p.RoleID,
		RoleName: p.RoleName,
		Capacity: p.Capacity,
	}
}

type roleResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func toRoleResponse(r circulation.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: r.Name, Capacity: r.Capacity}
}

type materialTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toMaterialTypeResponse(mt circulation.MaterialType) materialTypeResponse {
	return materialTypeResponse{ID: mt.ID, Name: mt.Name}
}

type loanResponse struct {
	ID            int64      `json:"id"`
	PersonID      int64      `json:"personId"`
	MaterialID    int64      `json:"materialId"`
	LoanedAt      time.Time  `json:"loanedAt"`
	ReturnedAt    *time.Time `json:"returnedAt"`
	Returned      bool       `json:"returned"`
	PersonName    string     `json:"personName,omitempty"`
	PersonCedula  string     `json:"personCedula,omitempty"`
	MaterialTitle string     `json:"materialTitle,omitempty"`
}

func toLoanResponse(l circulation.Loan) loanResponse {
	return loanResponse{
		ID:         l.ID,
		PersonID:   l.PersonID,
		MaterialID: l.MaterialID,
		LoanedAt:   l.LoanedAt,
		ReturnedAt: l.ReturnedAt,
		Returned:   l.Returned,
	}
}

func toLoanDetailsResponse(l circulation.LoanDetails) loanResponse {
	response := toLoanResponse(l.Loan)
	response.PersonName = l.PersonName
	response.PersonCedula = l.PersonCedula
	response.MaterialTitle = l.MaterialTitle

	return response
}

func toLoanDetailsResponses(loans []circulation.LoanDetails) []loanResponse {
	return mapAll(loans, toLoanDetailsResponse)
}

type availabilityResponse struct {
	PersonID    int64  `json:"personId"`
	Name        string `json:"name"`
	Cedula      string `json:"cedula"`
	RoleName    string `json:"roleName"`
	Capacity    int    `json:"capacity"`
	ActiveLoans int    `json:"activeLoans"`
	Available   int    `json:"available"`
}

func toAvailabilityResponse(a circulation.Availability) availabilityResponse {
	return availabilityResponse{
		PersonID:    a.PersonID,
		Name:        a.PersonName,
		Cedula:      a.Cedula,
		RoleName:    a.RoleName,
		Capacity:    a.Capacity,
		ActiveLoans: a.ActiveLoans,
		Available:   a.Available,
	}
}

type journalEntryResponse struct {
	EntryID       string    `json:"entryId"`
	EntryType     string    `json:"entryType"`
	LoanID        *int64    `json:"loanId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Event         any       `json:"event"`
}

type journalResponse struct {
	MaterialID     int64                  `json:"materialId"`
	Entries        []journalEntryResponse `json:"entries"`
	NetStockChange int                    `json:"netStockChange"`
}

func toJournalResponse(j circulationjournal.Journal) journalResponse {
	return journalResponse{
		MaterialID:     j.MaterialID,
		NetStockChange: j.NetStockChange,
		Entries: mapAll(j.Entries, func(e circulationjournal.Entry) journalEntryResponse {
			return journalEntryResponse{
				EntryID:       e.EntryID.String(),
				EntryType:     e.EntryType,
				LoanID:        e.LoanID,
				OccurredAt:    e.OccurredAt,
				CorrelationID: e.CorrelationID,
				Event:         e.Event,
			}
		}),
	}
}

func mapAll[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}
