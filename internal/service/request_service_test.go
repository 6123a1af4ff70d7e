package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/guest-service/internal/domain"
)

type memRequestRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Request
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{byID: map[string]*domain.Request{}}
}

func (m *memRequestRepo) Create(_ context.Context, r *domain.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	clone := *r
	m.byID[r.ID] = &clone
	return nil
}

func (m *memRequestRepo) GetByID(_ context.Context, id string) (*domain.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.byID[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memRequestRepo) UpdateStatusNotes(_ context.Context, r *domain.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[r.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = r.Status
	stored.Notes = r.Notes
	stored.UpdatedAt = time.Now()
	r.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *memRequestRepo) ListByGuest(_ context.Context, guestID string) ([]domain.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Request
	for _, r := range m.byID {
		if r.GuestID != nil && *r.GuestID == guestID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRequestRepo) ListByEmployee(_ context.Context, employeeID string) ([]domain.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Request
	for _, r := range m.byID {
		if r.EmployeeID != nil && *r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fixture struct {
	svc      *RequestService
	requests *memRequestRepo
	guest    *domain.User
	employee *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := newMemUserRepo()
	requests := newMemRequestRepo()

	guest := &domain.User{Email: "a@x.com", FullName: "Guest A", Role: domain.RoleGuest, PrimaryPhone: "1", Active: true}
	if err := users.Create(context.Background(), guest); err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	employee := &domain.User{Email: "b@x.com", FullName: "Employee B", Role: domain.RoleEmployee, PrimaryPhone: "2", Active: true}
	if err := users.Create(context.Background(), employee); err != nil {
		t.Fatalf("seed employee: %v", err)
	}

	svc := NewRequestService(RequestDependencies{RequestRepo: requests, UserRepo: users})
	return &fixture{svc: svc, requests: requests, guest: guest, employee: employee}
}

func (f *fixture) create(t *testing.T) *domain.Request {
	t.Helper()
	request, err := f.svc.Create(context.Background(), f.guest, RequestCreateInput{
		EmployeeID:  f.employee.ID,
		Type:        domain.RequestTypeNew,
		Description: "leak in room 4",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return request
}

func TestCreateRequestStartsOpen(t *testing.T) {
	f := newFixture(t)
	request := f.create(t)

	if request.Status != domain.RequestStatusOpen {
		t.Fatalf("expected initial status open, got %q", request.Status)
	}
	if request.GuestID == nil || *request.GuestID != f.guest.ID {
		t.Fatalf("request not tied to calling guest")
	}
	if request.EmployeeID == nil || *request.EmployeeID != f.employee.ID {
		t.Fatalf("request not tied to assigned employee")
	}
	if request.EmployeeName != "Employee B" {
		t.Fatalf("expected resolved employee name, got %q", request.EmployeeName)
	}
}

func TestCreateRequestRejectsGuestAssignee(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.guest, RequestCreateInput{
		EmployeeID:  f.guest.ID,
		Type:        domain.RequestTypeNew,
		Description: "broken window",
	})
	if de := domainErr(t, err); de.HTTPStatus != 400 {
		t.Fatalf("expected 400 for guest-role assignee, got %d", de.HTTPStatus)
	}

	_, err = f.svc.Create(context.Background(), f.guest, RequestCreateInput{
		EmployeeID:  "missing",
		Type:        domain.RequestTypeNew,
		Description: "broken window",
	})
	if de := domainErr(t, err); de.HTTPStatus != 400 {
		t.Fatalf("expected 400 for unknown employee id, got %d", de.HTTPStatus)
	}
}

func TestCreateRequestValidatesTypeAndDescription(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.guest, RequestCreateInput{
		EmployeeID:  f.employee.ID,
		Type:        "urgent",
		Description: "",
	})
	de := domainErr(t, err)
	if _, ok := de.Details["type"]; !ok {
		t.Fatalf("expected type violation: %v", de.Details)
	}
	if _, ok := de.Details["description"]; !ok {
		t.Fatalf("expected description violation: %v", de.Details)
	}
}

func TestListForUserScoping(t *testing.T) {
	f := newFixture(t)
	request := f.create(t)

	guestList, err := f.svc.ListForUser(context.Background(), f.guest)
	if err != nil {
		t.Fatalf("guest list: %v", err)
	}
	if len(guestList) != 1 || guestList[0].ID != request.ID {
		t.Fatalf("guest should see exactly the owned request")
	}

	employeeList, err := f.svc.ListForUser(context.Background(), f.employee)
	if err != nil {
		t.Fatalf("employee list: %v", err)
	}
	if len(employeeList) != 1 || employeeList[0].ID != request.ID {
		t.Fatalf("employee should see exactly the assigned request")
	}

	// The guest owning nothing assigned sees nothing through employee scoping
	// and vice versa: a second guest sees an empty list.
	other := &domain.User{ID: "other", Role: domain.RoleGuest}
	otherList, err := f.svc.ListForUser(context.Background(), other)
	if err != nil {
		t.Fatalf("other guest list: %v", err)
	}
	if len(otherList) != 0 {
		t.Fatalf("unrelated guest saw %d requests", len(otherList))
	}

	bad := &domain.User{ID: "x", Role: "admin"}
	if _, err := f.svc.ListForUser(context.Background(), bad); err == nil {
		t.Fatalf("expected unknown role to fail")
	}
}

func TestLookupsRequireEmployeeRole(t *testing.T) {
	f := newFixture(t)
	request := f.create(t)

	if _, err := f.svc.ListByGuestID(context.Background(), f.guest, f.guest.ID); err == nil {
		t.Fatalf("expected guest lookup-by-id to be forbidden")
	}
	if _, err := f.svc.ListByEmployeeID(context.Background(), f.guest, f.employee.ID); err == nil {
		t.Fatalf("expected guest lookup-by-id to be forbidden")
	}

	list, err := f.svc.ListByGuestID(context.Background(), f.employee, f.guest.ID)
	if err != nil {
		t.Fatalf("employee lookup failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != request.ID {
		t.Fatalf("employee lookup returned wrong set")
	}
}

func TestUpdateForbiddenForGuest(t *testing.T) {
	f := newFixture(t)
	request := f.create(t)

	status := domain.RequestStatusClosed
	_, err := f.svc.Update(context.Background(), f.guest, request.ID, RequestPatch{Status: &status})
	if de := domainErr(t, err); de.HTTPStatus != 403 {
		t.Fatalf("expected 403 for guest update, got %d", de.HTTPStatus)
	}
}

func TestUpdateAppliesOnlyMutableFields(t *testing.T) {
	f := newFixture(t)
	request := f.create(t)

	status := domain.RequestStatusClosed
	notes := "fixed"
	updated, err := f.svc.Update(context.Background(), f.employee, request.ID, RequestPatch{
		Status: &status,
		Notes:  &notes,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.RequestStatusClosed {
		t.Fatalf("status not applied: %q", updated.Status)
	}
	if updated.Notes == nil || *updated.Notes != "fixed" {
		t.Fatalf("notes not applied")
	}
	if *updated.GuestID != f.guest.ID || *updated.EmployeeID != f.employee.ID || updated.Type != domain.RequestTypeNew {
		t.Fatalf("immutable fields changed")
	}
	if !updated.UpdatedAt.After(request.CreatedAt) && !updated.UpdatedAt.Equal(request.CreatedAt) {
		t.Fatalf("updated_at not refreshed")
	}

	stored, err := f.requests.GetByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != domain.RequestStatusClosed {
		t.Fatalf("update not persisted")
	}
}

func TestUpdateValidatesStatusAndNotes(t *testing.T) {
	f := newFixture(t)
	request := f.create(t)

	bad := domain.RequestStatus("pending")
	if _, err := f.svc.Update(context.Background(), f.employee, request.ID, RequestPatch{Status: &bad}); err == nil {
		t.Fatalf("expected out-of-enum status to be rejected")
	}

	long := make([]byte, domain.NotesMaxLen+1)
	for i := range long {
		long[i] = 'x'
	}
	notes := string(long)
	if _, err := f.svc.Update(context.Background(), f.employee, request.ID, RequestPatch{Notes: &notes}); err == nil {
		t.Fatalf("expected over-long notes to be rejected")
	}
}

func TestUpdateUnknownRequest(t *testing.T) {
	f := newFixture(t)
	status := domain.RequestStatusClosed
	_, err := f.svc.Update(context.Background(), f.employee, "missing", RequestPatch{Status: &status})
	if de := domainErr(t, err); de.HTTPStatus != 404 {
		t.Fatalf("expected 404 for unknown request, got %d", de.HTTPStatus)
	}
}

// Mirrors a full guest/employee exchange: file a request, close it, and see
// the closed status reflected in the guest's own listing.
func TestGuestEmployeeFlow(t *testing.T) {
	f := newFixture(t)
	request := f.create(t)

	status := domain.RequestStatusClosed
	notes := "fixed"
	if _, err := f.svc.Update(context.Background(), f.employee, request.ID, RequestPatch{Status: &status, Notes: &notes}); err != nil {
		t.Fatalf("employee update failed: %v", err)
	}

	list, err := f.svc.ListForUser(context.Background(), f.guest)
	if err != nil {
		t.Fatalf("guest list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one request, got %d", len(list))
	}
	if list[0].Status != domain.RequestStatusClosed {
		t.Fatalf("guest does not see updated status: %q", list[0].Status)
	}
}
