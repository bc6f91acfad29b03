package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/db"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/dberrors"
)

// AcademicYearRepository handles database operations for academic years
type AcademicYearRepository struct {
	db *db.PostgresDB
}

// NewAcademicYearRepository creates a new academic year repository
func NewAcademicYearRepository(database *db.PostgresDB) *AcademicYearRepository {
	return &AcademicYearRepository{db: database}
}

const academicYearColumns = `id, name, is_active, start_date, end_date, created_at`

func scanAcademicYear(row pgx.Row) (*models.AcademicYear, error) {
	var year models.AcademicYear
	err := row.Scan(
		&year.ID,
		&year.Name,
		&year.IsActive,
		&year.StartDate,
		&year.EndDate,
		&year.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &year, nil
}

// Create inserts a new academic year (inactive until explicitly activated)
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	query := `
		INSERT INTO academic_years (name, is_active, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, year.Name, year.IsActive, year.StartDate, year.EndDate).
		Scan(&year.ID, &year.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAcademicYearAlreadyExists
		}
		return fmt.Errorf("error creating academic year: %w", err)
	}

	return nil
}

// GetByID retrieves an academic year by ID
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + ` FROM academic_years WHERE id = $1`

	year, err := scanAcademicYear(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}

	return year, nil
}

// GetActive retrieves the single academic year flagged active
func (r *AcademicYearRepository) GetActive(ctx context.Context) (*models.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + ` FROM academic_years WHERE is_active = TRUE`

	year, err := scanAcademicYear(r.db.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoActiveAcademicYear
		}
		return nil, fmt.Errorf("error retrieving active academic year: %w", err)
	}

	return year, nil
}

// GetAll retrieves all academic years, newest first
func (r *AcademicYearRepository) GetAll(ctx context.Context) ([]*models.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + ` FROM academic_years ORDER BY start_date DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving academic years: %w", err)
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		year, err := scanAcademicYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return years, nil
}

// Update edits the name and dates of an academic year
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	query := `
		UPDATE academic_years
		SET name = $1, start_date = $2, end_date = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Pool.Exec(ctx, query, year.Name, year.StartDate, year.EndDate, year.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAcademicYearAlreadyExists
		}
		return fmt.Errorf("error updating academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}

	return nil
}

// Activate flags one academic year as active and deactivates every other
// row in the same transaction, preserving the single-active invariant.
func (r *AcademicYearRepository) Activate(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE academic_years SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
			return fmt.Errorf("error deactivating academic years: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `UPDATE academic_years SET is_active = TRUE WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error activating academic year: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrAcademicYearNotFound
		}

		return nil
	})
}

// Delete removes an academic year. Years referenced by applicants are refused.
func (r *AcademicYearRepository) Delete(ctx context.Context, id int64) error {
	var hasApplicants bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applicants WHERE academic_year_id = $1)`, id).
		Scan(&hasApplicants)
	if err != nil {
		return fmt.Errorf("error checking applicants for academic year: %w", err)
	}
	if hasApplicants {
		return apperrors.ErrAcademicYearHasApplicants
	}

	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM academic_years WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}

	return nil
}
