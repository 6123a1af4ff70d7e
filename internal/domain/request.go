package domain

import "time"

// RequestStatus enumerates lifecycle states for service requests.
type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusOnProcess RequestStatus = "on process"
	RequestStatusClosed    RequestStatus = "closed"
)

// Valid reports whether the status is a member of the enumeration.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusOnProcess, RequestStatusClosed:
		return true
	}
	return false
}

// RequestType enumerates the kind of request a guest files.
type RequestType string

const (
	RequestTypeNew      RequestType = "new"
	RequestTypeComplain RequestType = "complain"
)

// Valid reports whether the type is a member of the enumeration.
func (t RequestType) Valid() bool {
	return t == RequestTypeNew || t == RequestTypeComplain
}

// Field length bounds for free-text request fields.
const (
	DescriptionMaxLen = 500
	NotesMaxLen       = 300
)

// EmployeeNameUnset is the projection value when no employee row resolves.
const EmployeeNameUnset = "N/A"

// Request is the aggregate for guest service requests. Guest and employee
// references are fixed at creation; deleting either user nulls the reference.
// Only status and notes mutate afterward.
type Request struct {
	ID           string
	GuestID      *string
	EmployeeID   *string
	Status       RequestStatus
	Type         RequestType
	Description  string
	Notes        *string
	EmployeeName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
