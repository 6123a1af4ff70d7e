package dto

import (
	"time"

	"github.com/spec-kit/guest-service/internal/domain"
)

// CreateRequestRequest payload.
type CreateRequestRequest struct {
	EmployeeID  string `json:"employee_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// UpdateRequestRequest carries the patchable fields. Immutable fields sent by
// the client are silently dropped by the binding itself.
type UpdateRequestRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// LookupRequest identifies a user for the employee-only lookup endpoints.
type LookupRequest struct {
	UserID string `json:"user_id"`
}

// RequestResponse is the read projection of a service request.
type RequestResponse struct {
	ID           string               `json:"id"`
	Type         domain.RequestType   `json:"type"`
	Status       domain.RequestStatus `json:"status"`
	Description  string               `json:"description"`
	Notes        *string              `json:"notes"`
	GuestID      *string              `json:"guest_id"`
	EmployeeID   *string              `json:"employee_id"`
	EmployeeName string               `json:"employee_name"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// NewRequestResponse maps a domain request to its projection.
func NewRequestResponse(request *domain.Request) RequestResponse {
	name := request.EmployeeName
	if name == "" {
		name = domain.EmployeeNameUnset
	}
	return RequestResponse{
		ID:           request.ID,
		Type:         request.Type,
		Status:       request.Status,
		Description:  request.Description,
		Notes:        request.Notes,
		GuestID:      request.GuestID,
		EmployeeID:   request.EmployeeID,
		EmployeeName: name,
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}
}

// NewRequestResponses maps a slice of requests.
func NewRequestResponses(requests []domain.Request) []RequestResponse {
	items := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, NewRequestResponse(&requests[i]))
	}
	return items
}
