package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/app/repositories"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/helpers"
	"github.com/pratama/sekolahku/internal/pkg/tabular"
)

// StudentColumns defines the tabular layout shared by student exports and
// the bulk importer, so an exported workbook can be re-imported as is.
var StudentColumns = []tabular.Column{
	{Key: "nis", Header: "NIS"},
	{Key: "fullName", Header: "Nama Lengkap"},
	{Key: "gender", Header: "Jenis Kelamin"},
	{Key: "dateOfBirth", Header: "Tanggal Lahir"},
	{Key: "placeOfBirth", Header: "Tempat Lahir"},
	{Key: "address", Header: "Alamat"},
	{Key: "parentName", Header: "Nama Orang Tua"},
	{Key: "parentPhone", Header: "Telepon Orang Tua"},
	{Key: "className", Header: "Kelas"},
}

// StudentService manages enrolled student records
type StudentService struct {
	studentRepo *repositories.StudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo *repositories.StudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{studentRepo: studentRepo, logger: logger}
}

// Create adds a single student record
func (s *StudentService) Create(ctx context.Context, req *dto.StudentRequest) (*models.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetByID retrieves a single student
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List retrieves a page of students matching the filter
func (s *StudentService) List(ctx context.Context, filter *dto.StudentFilter) ([]*models.Student, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	students, total, err := s.studentRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return students, helpers.NewPaginationInfo(total, filter.Page, filter.PageSize), nil
}

// GetAll retrieves every student, for exports
func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// Update replaces a student's details
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	student.ID = id
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

// Delete removes a student record
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}

// ImportRows inserts students parsed from a spreadsheet, one row at a time.
// A bad row is reported and skipped; it never aborts the rest of the file.
// Spreadsheet rows are numbered from 2 because row 1 holds the headers.
func (s *StudentService) ImportRows(ctx context.Context, records []map[string]string) (*dto.ImportReport, error) {
	report := &dto.ImportReport{}

	for i, record := range records {
		rowNo := i + 2

		student, err := studentFromRecord(record)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, dto.ImportRowError{Row: rowNo, Message: err.Error()})
			continue
		}

		if err := s.studentRepo.Create(ctx, student); err != nil {
			if errors.Is(err, apperrors.ErrNISAlreadyExists) {
				report.Skipped++
				report.Errors = append(report.Errors, dto.ImportRowError{
					Row:     rowNo,
					Message: fmt.Sprintf("NIS %s already exists", student.NIS),
				})
				continue
			}
			return nil, fmt.Errorf("error importing row %d: %w", rowNo, err)
		}

		report.Imported++
	}

	s.logger.Info().
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("Student import finished")

	return report, nil
}

// ExportRows flattens students into the tabular row shape of StudentColumns
func ExportRows(students []*models.Student) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(students))
	for _, st := range students {
		row := map[string]interface{}{
			"nis":          st.NIS,
			"fullName":     st.FullName,
			"gender":       string(st.Gender),
			"dateOfBirth":  st.DateOfBirth,
			"placeOfBirth": st.PlaceOfBirth,
			"address":      st.Address,
			"parentName":   st.ParentName,
			"parentPhone":  st.ParentPhone,
		}
		if st.ClassName != nil {
			row["className"] = *st.ClassName
		}
		rows = append(rows, row)
	}
	return rows
}

func studentFromRequest(req *dto.StudentRequest) (*models.Student, error) {
	dateOfBirth, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date of birth must be a valid date")
	}

	return &models.Student{
		NIS:          strings.TrimSpace(req.NIS),
		FullName:     strings.TrimSpace(req.FullName),
		Gender:       models.Gender(req.Gender),
		DateOfBirth:  dateOfBirth,
		PlaceOfBirth: strings.TrimSpace(req.PlaceOfBirth),
		Address:      strings.TrimSpace(req.Address),
		ParentName:   strings.TrimSpace(req.ParentName),
		ParentPhone:  strings.TrimSpace(req.ParentPhone),
		ClassName:    optionalString(req.ClassName),
	}, nil
}

// studentFromRecord builds a student from one spreadsheet row keyed by the
// StudentColumns headers.
func studentFromRecord(record map[string]string) (*models.Student, error) {
	get := func(header string) string {
		return strings.TrimSpace(record[header])
	}

	for _, header := range []string{"NIS", "Nama Lengkap", "Tempat Lahir", "Alamat", "Nama Orang Tua", "Telepon Orang Tua"} {
		if get(header) == "" {
			return nil, fmt.Errorf("column %q is required", header)
		}
	}

	gender, err := parseGender(get("Jenis Kelamin"))
	if err != nil {
		return nil, err
	}

	dateOfBirth, err := helpers.ParseDate(get("Tanggal Lahir"))
	if err != nil {
		return nil, fmt.Errorf("column %q must be a date in YYYY-MM-DD form", "Tanggal Lahir")
	}

	return &models.Student{
		NIS:          get("NIS"),
		FullName:     get("Nama Lengkap"),
		Gender:       gender,
		DateOfBirth:  dateOfBirth,
		PlaceOfBirth: get("Tempat Lahir"),
		Address:      get("Alamat"),
		ParentName:   get("Nama Orang Tua"),
		ParentPhone:  get("Telepon Orang Tua"),
		ClassName:    optionalString(record["Kelas"]),
	}, nil
}

// parseGender also accepts the L/P shorthand common on Indonesian school forms
func parseGender(v string) (models.Gender, error) {
	switch strings.ToUpper(v) {
	case "MALE", "L", "LAKI-LAKI":
		return models.GenderMale, nil
	case "FEMALE", "P", "PEREMPUAN":
		return models.GenderFemale, nil
	default:
		return "", fmt.Errorf("column %q must be L/P or MALE/FEMALE", "Jenis Kelamin")
	}
}
