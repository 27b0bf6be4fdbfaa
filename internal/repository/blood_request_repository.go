package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blood-donation-service/internal/domain"
)

// RequestFilter captures blood request search parameters.
type RequestFilter struct {
	BloodType *string
	Urgency   *domain.RequestUrgency
	Status    *domain.RequestStatus
	UserID    *string
}

// ErrStatusConflict is returned by conditional transitions when the row exists
// but is no longer in the expected source state.
var ErrStatusConflict = fmt.Errorf("request not in expected state")

// BloodRequestRepository encapsulates blood request persistence.
type BloodRequestRepository interface {
	Create(ctx context.Context, request *domain.BloodRequest) error
	Update(ctx context.Context, request *domain.BloodRequest) error
	GetByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	GetOwned(ctx context.Context, id, userID string) (*domain.BloodRequest, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.BloodRequest, error)
	Approve(ctx context.Context, id, adminID string) error
	Transition(ctx context.Context, id string, from, to domain.RequestStatus) error
	Delete(ctx context.Context, id string) error
	DeleteOwned(ctx context.Context, id, userID string) error
}

type bloodRequestRepository struct {
	pool *pgxpool.Pool
}

// NewBloodRequestRepository instantiates repository.
func NewBloodRequestRepository(pool *pgxpool.Pool) BloodRequestRepository {
	return &bloodRequestRepository{pool: pool}
}

const requestColumns = `r.id, r.user_id, r.patient_name, r.blood_type, r.quantity,
        r.hospital_name, r.contact_number, r.required_date, r.urgency, r.status,
        r.description, r.approved_by, r.approved_at, r.created_at, r.updated_at, u.name, u.email`

func (r *bloodRequestRepository) Create(ctx context.Context, request *domain.BloodRequest) error {
	const query = `
        INSERT INTO blood_requests (user_id, patient_name, blood_type, quantity, hospital_name,
            contact_number, required_date, urgency, status, description)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.UserID,
		request.PatientName,
		request.BloodType,
		request.Quantity,
		request.HospitalName,
		request.ContactNumber,
		request.RequiredDate,
		request.Urgency,
		request.Status,
		request.Description,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *bloodRequestRepository) Update(ctx context.Context, request *domain.BloodRequest) error {
	const query = `
        UPDATE blood_requests SET patient_name=$1, blood_type=$2, quantity=$3, hospital_name=$4,
            contact_number=$5, required_date=$6, urgency=$7, description=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		request.PatientName,
		request.BloodType,
		request.Quantity,
		request.HospitalName,
		request.ContactNumber,
		request.RequiredDate,
		request.Urgency,
		request.Description,
		request.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM blood_requests r JOIN users u ON u.id=r.user_id WHERE r.id=$1`, requestColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *bloodRequestRepository) GetOwned(ctx context.Context, id, userID string) (*domain.BloodRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM blood_requests r JOIN users u ON u.id=r.user_id
        WHERE r.id=$1 AND r.user_id=$2`, requestColumns)
	var request domain.BloodRequest
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(scanTargets(&request)...); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *bloodRequestRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.BloodRequest, error) {
	var request domain.BloodRequest
	if err := r.pool.QueryRow(ctx, query, arg).Scan(scanTargets(&request)...); err != nil {
		return nil, err
	}
	return &request, nil
}

func scanTargets(request *domain.BloodRequest) []any {
	return []any{
		&request.ID,
		&request.UserID,
		&request.PatientName,
		&request.BloodType,
		&request.Quantity,
		&request.HospitalName,
		&request.ContactNumber,
		&request.RequiredDate,
		&request.Urgency,
		&request.Status,
		&request.Description,
		&request.ApprovedBy,
		&request.ApprovedAt,
		&request.CreatedAt,
		&request.UpdatedAt,
		&request.RequesterName,
		&request.RequesterEmail,
	}
}

func (r *bloodRequestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.BloodRequest, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BloodType != nil {
		args = append(args, *filter.BloodType)
		clauses = append(clauses, fmt.Sprintf("r.blood_type=$%d", len(args)))
	}
	if filter.Urgency != nil {
		args = append(args, *filter.Urgency)
		clauses = append(clauses, fmt.Sprintf("r.urgency=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("r.status=$%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("r.user_id=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM blood_requests r JOIN users u ON u.id=r.user_id
        WHERE %s ORDER BY r.created_at DESC`, requestColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BloodRequest
	for rows.Next() {
		var request domain.BloodRequest
		if err := rows.Scan(scanTargets(&request)...); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}

// Approve performs the pending->approved transition as a single conditional
// update so two concurrent admins cannot both win.
func (r *bloodRequestRepository) Approve(ctx context.Context, id, adminID string) error {
	const query = `
        UPDATE blood_requests SET status='approved', approved_by=$1, approved_at=NOW(), updated_at=NOW()
        WHERE id=$2 AND status='pending'`
	cmd, err := r.pool.Exec(ctx, query, adminID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Transition moves a request between states with a conditional guard on the
// source state. ApprovedBy/ApprovedAt are untouched.
func (r *bloodRequestRepository) Transition(ctx context.Context, id string, from, to domain.RequestStatus) error {
	const query = `
        UPDATE blood_requests SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *bloodRequestRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM blood_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bloodRequestRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM blood_requests WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
