package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blood-donation-service/internal/domain"
)

// DonationRepository encapsulates donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	GetByID(ctx context.Context, id string) (*domain.Donation, error)
	ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error)
	List(ctx context.Context) ([]domain.Donation, error)
	Transition(ctx context.Context, id string, from, to domain.DonationStatus) error
}

type donationRepository struct {
	pool *pgxpool.Pool
}

// NewDonationRepository instantiates repository.
func NewDonationRepository(pool *pgxpool.Pool) DonationRepository {
	return &donationRepository{pool: pool}
}

const donationColumns = `id, donor_id, request_id, donation_date, status, notes, created_at, updated_at`

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	const query = `
        INSERT INTO donations (donor_id, request_id, donation_date, status, notes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		donation.DonorID,
		donation.RequestID,
		donation.DonationDate,
		donation.Status,
		donation.Notes,
	).Scan(&donation.ID, &donation.CreatedAt, &donation.UpdatedAt)
}

func (r *donationRepository) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	var donation domain.Donation
	if err := r.pool.QueryRow(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE id=$1`, id).Scan(
		&donation.ID,
		&donation.DonorID,
		&donation.RequestID,
		&donation.DonationDate,
		&donation.Status,
		&donation.Notes,
		&donation.CreatedAt,
		&donation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE donor_id=$1 ORDER BY created_at DESC`, donorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonations(rows)
}

func (r *donationRepository) List(ctx context.Context) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationColumns+` FROM donations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonations(rows)
}

func (r *donationRepository) Transition(ctx context.Context, id string, from, to domain.DonationStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE donations SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`, to, id, from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

func scanDonations(rows pgx.Rows) ([]domain.Donation, error) {
	var result []domain.Donation
	for rows.Next() {
		var donation domain.Donation
		if err := rows.Scan(
			&donation.ID,
			&donation.DonorID,
			&donation.RequestID,
			&donation.DonationDate,
			&donation.Status,
			&donation.Notes,
			&donation.CreatedAt,
			&donation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, donation)
	}
	return result, rows.Err()
}
