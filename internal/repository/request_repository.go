package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/guest-service/internal/domain"
)

// RequestRepository encapsulates service-request persistence. Reads resolve
// the employee name through a join, defaulting to the sentinel when unset.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	UpdateStatusNotes(ctx context.Context, request *domain.Request) error
	ListByGuest(ctx context.Context, guestID string) ([]domain.Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Request, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestSelect = `
        SELECT r.id, r.guest_id, r.employee_id, r.status, r.type, r.description, r.notes,
               COALESCE(e.full_name, 'N/A') AS employee_name, r.created_at, r.updated_at
        FROM requests r
        LEFT JOIN users e ON e.id = r.employee_id`

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (guest_id, employee_id, status, type, description, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.GuestID,
		request.EmployeeID,
		request.Status,
		request.Type,
		request.Description,
		request.Notes,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	const query = requestSelect + `
        WHERE r.id=$1`

	var request domain.Request
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.GuestID,
		&request.EmployeeID,
		&request.Status,
		&request.Type,
		&request.Description,
		&request.Notes,
		&request.EmployeeName,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateStatusNotes persists the mutable fields in a single statement and
// refreshes the last-modified timestamp.
func (r *requestRepository) UpdateStatusNotes(ctx context.Context, request *domain.Request) error {
	const query = `
        UPDATE requests SET status=$1, notes=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		request.Status,
		request.Notes,
		request.ID,
	).Scan(&request.UpdatedAt)
}

func (r *requestRepository) ListByGuest(ctx context.Context, guestID string) ([]domain.Request, error) {
	const query = requestSelect + `
        WHERE r.guest_id=$1 ORDER BY r.created_at DESC`
	return r.list(ctx, query, guestID)
}

func (r *requestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Request, error) {
	const query = requestSelect + `
        WHERE r.employee_id=$1 ORDER BY r.created_at DESC`
	return r.list(ctx, query, employeeID)
}

func (r *requestRepository) list(ctx context.Context, query string, arg any) ([]domain.Request, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		var request domain.Request
		if err := rows.Scan(
			&request.ID,
			&request.GuestID,
			&request.EmployeeID,
			&request.Status,
			&request.Type,
			&request.Description,
			&request.Notes,
			&request.EmployeeName,
			&request.CreatedAt,
			&request.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
