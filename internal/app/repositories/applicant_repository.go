package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/db"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/dberrors"
)

// registerMaxAttempts bounds retries when a registration number collides.
// The counter is transactional so a collision only happens if numbers were
// also created outside the counter (e.g. restored backups).
const registerMaxAttempts = 2

// ApplicantRepository handles database operations for admissions applicants
type ApplicantRepository struct {
	db *db.PostgresDB
}

// NewApplicantRepository creates a new applicant repository
func NewApplicantRepository(database *db.PostgresDB) *ApplicantRepository {
	return &ApplicantRepository{db: database}
}

const applicantColumns = `
	id, registration_no, academic_year_id, full_name, gender, date_of_birth,
	place_of_birth, address, parent_name, parent_phone, parent_email,
	previous_school, photo_url, birth_certificate_url, family_card_url,
	status, test_score, created_at`

func scanApplicant(row pgx.Row) (*models.Applicant, error) {
	var a models.Applicant
	err := row.Scan(
		&a.ID,
		&a.RegistrationNo,
		&a.AcademicYearID,
		&a.FullName,
		&a.Gender,
		&a.DateOfBirth,
		&a.PlaceOfBirth,
		&a.Address,
		&a.ParentName,
		&a.ParentPhone,
		&a.ParentEmail,
		&a.PreviousSchool,
		&a.PhotoURL,
		&a.BirthCertificateURL,
		&a.FamilyCardURL,
		&a.Status,
		&a.TestScore,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Register allocates the next registration number for the applicant's
// academic year and inserts the row, both inside one transaction. The
// per-year counter is bumped with an upsert-increment so two concurrent
// submissions can never read the same sequence value.
func (r *ApplicantRepository) Register(ctx context.Context, applicant *models.Applicant) error {
	var lastErr error
	for attempt := 0; attempt < registerMaxAttempts; attempt++ {
		err := r.registerOnce(ctx, applicant)
		if err == nil {
			return nil
		}
		if dberrors.IsDuplicateConstraintError(err, "applicants_registration_no_key") {
			lastErr = err
			continue
		}
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrRegistrationConflict, lastErr)
}

func (r *ApplicantRepository) registerOnce(ctx context.Context, applicant *models.Applicant) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var seq int64
		err := tx.QueryRow(ctx, `
		INSERT INTO registration_counters (academic_year_id, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (academic_year_id)
		DO UPDATE SET last_seq = registration_counters.last_seq + 1
		RETURNING last_seq
	`, applicant.AcademicYearID).Scan(&seq)
		if err != nil {
			return fmt.Errorf("error allocating registration sequence: %w", err)
		}

		applicant.RegistrationNo = models.FormatRegistrationNumber(time.Now().Year(), seq)

		return tx.QueryRow(ctx, `
		INSERT INTO applicants (
			registration_no, academic_year_id, full_name, gender, date_of_birth,
			place_of_birth, address, parent_name, parent_phone, parent_email,
			previous_school, photo_url, birth_certificate_url, family_card_url, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`,
			applicant.RegistrationNo,
			applicant.AcademicYearID,
			applicant.FullName,
			applicant.Gender,
			applicant.DateOfBirth,
			applicant.PlaceOfBirth,
			applicant.Address,
			applicant.ParentName,
			applicant.ParentPhone,
			applicant.ParentEmail,
			applicant.PreviousSchool,
			applicant.PhotoURL,
			applicant.BirthCertificateURL,
			applicant.FamilyCardURL,
			applicant.Status,
		).Scan(&applicant.ID, &applicant.CreatedAt)
	})
}

// GetByID retrieves an applicant by ID
func (r *ApplicantRepository) GetByID(ctx context.Context, id int64) (*models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE id = $1`

	applicant, err := scanApplicant(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicantNotFound
		}
		return nil, fmt.Errorf("error retrieving applicant: %w", err)
	}

	return applicant, nil
}

// List retrieves applicants matching the filter with their total count
func (r *ApplicantRepository) List(ctx context.Context, filter *dto.ApplicantFilter, offset, limit int) ([]*models.Applicant, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.AcademicYearID != nil {
		where += fmt.Sprintf(" AND academic_year_id = $%d", argPos)
		args = append(args, *filter.AcademicYearID)
		argPos++
	}
	if filter.Search != nil {
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR registration_no ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM applicants`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applicants: %w", err)
	}

	query := `SELECT ` + applicantColumns + ` FROM applicants` + where +
		fmt.Sprintf(" ORDER BY created_at DESC OFFSET $%d LIMIT $%d", argPos, argPos+1)
	args = append(args, offset, limit)

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing applicants: %w", err)
	}
	defer rows.Close()

	var applicants []*models.Applicant
	for rows.Next() {
		applicant, err := scanApplicant(rows)
		if err != nil {
			return nil, 0, err
		}
		applicants = append(applicants, applicant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return applicants, total, nil
}

// GetScoredByAcademicYear retrieves applicants of one year in insertion
// order; the ranking view relies on that order for stable tie-breaking.
func (r *ApplicantRepository) GetScoredByAcademicYear(ctx context.Context, academicYearID int64) ([]*models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE academic_year_id = $1 ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query, academicYearID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving applicants for ranking: %w", err)
	}
	defer rows.Close()

	var applicants []*models.Applicant
	for rows.Next() {
		applicant, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		applicants = append(applicants, applicant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return applicants, nil
}

// UpdateStatus transitions an applicant between pipeline states
func (r *ApplicantRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicantStatus) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `UPDATE applicants SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating applicant status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicantNotFound
	}
	return nil
}

// UpdateScore records an applicant's entrance test score and marks them tested
func (r *ApplicantRepository) UpdateScore(ctx context.Context, id int64, score float64) error {
	cmdTag, err := r.db.Pool.Exec(ctx,
		`UPDATE applicants SET test_score = $1, status = $2 WHERE id = $3`,
		score, models.StatusTested, id)
	if err != nil {
		return fmt.Errorf("error updating applicant score: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicantNotFound
	}
	return nil
}
