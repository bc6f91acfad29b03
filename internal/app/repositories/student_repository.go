package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/dberrors"
)

// StudentRepository handles database operations for enrolled students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `
	id, nis, full_name, gender, date_of_birth, place_of_birth, address,
	parent_name, parent_phone, class_name, created_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.NIS,
		&s.FullName,
		&s.Gender,
		&s.DateOfBirth,
		&s.PlaceOfBirth,
		&s.Address,
		&s.ParentName,
		&s.ParentPhone,
		&s.ClassName,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (
			nis, full_name, gender, date_of_birth, place_of_birth, address,
			parent_name, parent_phone, class_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		student.NIS,
		student.FullName,
		student.Gender,
		student.DateOfBirth,
		student.PlaceOfBirth,
		student.Address,
		student.ParentName,
		student.ParentPhone,
		student.ClassName,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrNISAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// List retrieves students matching the filter with their total count
func (r *StudentRepository) List(ctx context.Context, filter *dto.StudentFilter, offset, limit int) ([]*models.Student, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Search != nil {
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR nis ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.ClassName != nil {
		where += fmt.Sprintf(" AND class_name = $%d", argPos)
		args = append(args, *filter.ClassName)
		argPos++
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	query := `SELECT ` + studentColumns + ` FROM students` + where +
		fmt.Sprintf(" ORDER BY full_name OFFSET $%d LIMIT $%d", argPos, argPos+1)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// GetAll retrieves every student ordered by name, for exports
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY full_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update edits an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET nis = $1, full_name = $2, gender = $3, date_of_birth = $4,
			place_of_birth = $5, address = $6, parent_name = $7,
			parent_phone = $8, class_name = $9
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.NIS,
		student.FullName,
		student.Gender,
		student.DateOfBirth,
		student.PlaceOfBirth,
		student.Address,
		student.ParentName,
		student.ParentPhone,
		student.ClassName,
		student.ID,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrNISAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
