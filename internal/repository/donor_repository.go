package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blood-donation-service/internal/domain"
)

// DonorFilter captures donor search parameters.
type DonorFilter struct {
	BloodType   *string
	Location    *string
	IsAvailable *bool
}

// DonorRepository encapsulates donor persistence.
type DonorRepository interface {
	Create(ctx context.Context, donor *domain.Donor) error
	Update(ctx context.Context, donor *domain.Donor) error
	GetByID(ctx context.Context, id string) (*domain.Donor, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Donor, error)
	ListWithFilter(ctx context.Context, filter DonorFilter) ([]domain.Donor, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	SetLastDonationDate(ctx context.Context, id string, date time.Time) error
	Delete(ctx context.Context, id string) error
}

type donorRepository struct {
	pool *pgxpool.Pool
}

// NewDonorRepository instantiates repository.
func NewDonorRepository(pool *pgxpool.Pool) DonorRepository {
	return &donorRepository{pool: pool}
}

const donorColumns = `d.id, d.user_id, d.blood_type, d.location, d.phone_number,
        d.last_donation_date, d.is_available, d.created_at, d.updated_at, u.name, u.email`

func (r *donorRepository) Create(ctx context.Context, donor *domain.Donor) error {
	const query = `
        INSERT INTO donors (user_id, blood_type, location, phone_number, last_donation_date, is_available)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		donor.UserID,
		donor.BloodType,
		donor.Location,
		donor.PhoneNumber,
		donor.LastDonationDate,
		donor.IsAvailable,
	).Scan(&donor.ID, &donor.CreatedAt, &donor.UpdatedAt)
}

func (r *donorRepository) Update(ctx context.Context, donor *domain.Donor) error {
	const query = `
        UPDATE donors SET blood_type=$1, location=$2, phone_number=$3,
            last_donation_date=$4, is_available=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		donor.BloodType,
		donor.Location,
		donor.PhoneNumber,
		donor.LastDonationDate,
		donor.IsAvailable,
		donor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *donorRepository) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	query := fmt.Sprintf(`SELECT %s FROM donors d JOIN users u ON u.id=d.user_id WHERE d.id=$1`, donorColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *donorRepository) GetByUserID(ctx context.Context, userID string) (*domain.Donor, error) {
	query := fmt.Sprintf(`SELECT %s FROM donors d JOIN users u ON u.id=d.user_id WHERE d.user_id=$1`, donorColumns)
	return r.fetchSingle(ctx, query, userID)
}

func (r *donorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Donor, error) {
	var donor domain.Donor
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&donor.ID,
		&donor.UserID,
		&donor.BloodType,
		&donor.Location,
		&donor.PhoneNumber,
		&donor.LastDonationDate,
		&donor.IsAvailable,
		&donor.CreatedAt,
		&donor.UpdatedAt,
		&donor.UserName,
		&donor.UserEmail,
	); err != nil {
		return nil, err
	}
	return &donor, nil
}

func (r *donorRepository) ListWithFilter(ctx context.Context, filter DonorFilter) ([]domain.Donor, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BloodType != nil {
		args = append(args, *filter.BloodType)
		clauses = append(clauses, fmt.Sprintf("d.blood_type=$%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Location))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(d.location) LIKE $%d", len(args)))
	}
	if filter.IsAvailable != nil {
		args = append(args, *filter.IsAvailable)
		clauses = append(clauses, fmt.Sprintf("d.is_available=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM donors d JOIN users u ON u.id=d.user_id
        WHERE %s ORDER BY d.created_at DESC`, donorColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Donor
	for rows.Next() {
		var donor domain.Donor
		if err := rows.Scan(
			&donor.ID,
			&donor.UserID,
			&donor.BloodType,
			&donor.Location,
			&donor.PhoneNumber,
			&donor.LastDonationDate,
			&donor.IsAvailable,
			&donor.CreatedAt,
			&donor.UpdatedAt,
			&donor.UserName,
			&donor.UserEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, donor)
	}
	return result, rows.Err()
}

func (r *donorRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE donors SET is_available=$1, updated_at=NOW() WHERE id=$2`, available, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *donorRepository) SetLastDonationDate(ctx context.Context, id string, date time.Time) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE donors SET last_donation_date=$1, updated_at=NOW() WHERE id=$2`, date, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *donorRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM donors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
