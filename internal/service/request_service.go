package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/guest-service/internal/domain"
	"github.com/spec-kit/guest-service/internal/events"
	"github.com/spec-kit/guest-service/internal/repository"
	apperrors "github.com/spec-kit/guest-service/pkg/util"
)

// RequestService coordinates service-request workflows.
type RequestService struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewRequestService builds the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// RequestCreateInput describes request creation payload.
type RequestCreateInput struct {
	EmployeeID  string
	Type        domain.RequestType
	Description string
}

// RequestPatch carries the mutable fields of a partial update. Anything else
// present in the incoming body is discarded before it reaches here.
type RequestPatch struct {
	Status *domain.RequestStatus
	Notes  *string
}

// Create files a new request owned by the calling guest and assigned to the
// given employee. New requests always start open.
func (s *RequestService) Create(ctx context.Context, guest *domain.User, input RequestCreateInput) (*domain.Request, error) {
	details := map[string]any{}
	if !input.Type.Valid() {
		details["type"] = "type must be new or complain"
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		details["description"] = "description is required"
	} else if len(description) > domain.DescriptionMaxLen {
		details["description"] = "description too long"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid request", details)
	}

	employee, err := s.users.GetByID(ctx, input.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("invalid employee id", nil)
		}
		return nil, err
	}
	if employee.Role != domain.RoleEmployee {
		return nil, apperrors.NewValidationError("invalid employee id", nil)
	}

	request := &domain.Request{
		GuestID:      &guest.ID,
		EmployeeID:   &employee.ID,
		Status:       domain.RequestStatusOpen,
		Type:         input.Type,
		Description:  description,
		EmployeeName: employee.FullName,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventRequestCreated, request.ID, events.RequestCreatedPayload{
		GuestID:    request.GuestID,
		EmployeeID: request.EmployeeID,
		Type:       request.Type,
	})
	return request, nil
}

// ListForUser returns the requests visible to the caller: owned requests for
// guests, assigned requests for employees.
func (s *RequestService) ListForUser(ctx context.Context, user *domain.User) ([]domain.Request, error) {
	switch user.Role {
	case domain.RoleGuest:
		return s.requests.ListByGuest(ctx, user.ID)
	case domain.RoleEmployee:
		return s.requests.ListByEmployee(ctx, user.ID)
	default:
		return nil, apperrors.NewValidationError("invalid user role", nil)
	}
}

// ListByGuestID looks up any guest's requests. Employee-only: support lookups
// must not let callers enumerate other users' requests.
func (s *RequestService) ListByGuestID(ctx context.Context, caller *domain.User, guestID string) ([]domain.Request, error) {
	if caller.Role != domain.RoleEmployee {
		return nil, apperrors.NewForbidden("employee role required")
	}
	return s.requests.ListByGuest(ctx, guestID)
}

// ListByEmployeeID looks up any employee's assigned requests. Employee-only.
func (s *RequestService) ListByEmployeeID(ctx context.Context, caller *domain.User, employeeID string) ([]domain.Request, error) {
	if caller.Role != domain.RoleEmployee {
		return nil, apperrors.NewForbidden("employee role required")
	}
	return s.requests.ListByEmployee(ctx, employeeID)
}

// Update applies a partial update to a request. Only employees may update,
// and only status and notes ever change.
func (s *RequestService) Update(ctx context.Context, caller *domain.User, requestID string, patch RequestPatch) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request")
		}
		return nil, err
	}
	if caller.Role != domain.RoleEmployee {
		return nil, apperrors.NewForbidden("you do not have permission to edit this request")
	}

	oldStatus := request.Status
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{
				"status": "status must be open, on process or closed",
			})
		}
		request.Status = *patch.Status
	}
	if patch.Notes != nil {
		if len(*patch.Notes) > domain.NotesMaxLen {
			return nil, apperrors.NewValidationError("invalid notes", map[string]any{
				"notes": "notes too long",
			})
		}
		request.Notes = patch.Notes
	}

	if err := s.requests.UpdateStatusNotes(ctx, request); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("request")
		}
		return nil, err
	}

	if request.Status != oldStatus {
		s.publish(ctx, events.EventRequestStatusChanged, request.ID, events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: request.Status,
		})
	}
	return request, nil
}

func (s *RequestService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        newEventID(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func newEventID() string {
	return uuid.NewString()
}
