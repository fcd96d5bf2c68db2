package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const requestColumns = `
	id, employee, manager, leave_type, start_date, end_date, half,
	leave_days, reason, action, action_at, is_expired, created_at
`

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) leave.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

func scanRequest(row pgx.Row) (leave.Request, error) {
	var r leave.Request
	err := row.Scan(
		&r.ID, &r.Employee, &r.Manager, &r.Type, &r.StartDate, &r.EndDate,
		&r.Half, &r.Days, &r.Reason, &r.Action, &r.ActionAt, &r.IsExpired,
		&r.CreatedAt,
	)
	return r, err
}

// Create implements leave.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee, manager, leave_type, start_date, end_date, half,
			leave_days, reason, is_expired, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10)
		RETURNING ` + requestColumns

	result, err := scanRequest(q.QueryRow(ctx, query,
		uuid.NewString(), req.Employee, req.Manager, req.Type, req.StartDate,
		req.EndDate, req.Half, req.Days, req.Reason, req.CreatedAt,
	))
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return result, nil
}

// GetByID implements leave.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanRequest(q.QueryRow(ctx, `SELECT `+requestColumns+` FROM leave_requests WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return result, nil
}

// SetAction implements leave.RequestRepository.
func (r *requestRepositoryImpl) SetAction(ctx context.Context, id string, action leave.Action, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE leave_requests SET action = $1, action_at = $2 WHERE id = $3`,
		action, at, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set leave request action: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// MarkExpired implements leave.RequestRepository.
func (r *requestRepositoryImpl) MarkExpired(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE leave_requests SET is_expired = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark leave request expired: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// Delete implements leave.RequestRepository.
func (r *requestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// ListPendingStartingOn implements leave.RequestRepository.
func (r *requestRepositoryImpl) ListPendingStartingOn(ctx context.Context, day time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests
		WHERE start_date = $1 AND action IS NULL AND is_expired = false
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// List implements leave.RequestRepository.
func (r *requestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM leave_requests WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.Employee != nil {
		query += fmt.Sprintf(" AND employee = $%d", idx)
		args = append(args, *filter.Employee)
		idx++
	}
	if filter.Manager != nil {
		query += fmt.Sprintf(" AND manager = $%d", idx)
		args = append(args, *filter.Manager)
		idx++
	}
	if filter.Action != nil {
		query += fmt.Sprintf(" AND action = $%d", idx)
		args = append(args, *filter.Action)
		idx++
	}
	if filter.PendingOnly {
		query += ` AND action IS NULL AND is_expired = false`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}
