package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/filestorage"
	"github.com/pratama/sekolahku/internal/pkg/helpers"
)

// Per-document limits for admissions uploads. The public form enforces the
// same cap client-side; the server repeats the check.
const maxDocumentSize = 2 * 1024 * 1024

// Storage subdirectories for admissions documents
const (
	photoFolder    = "spmb/photos"
	documentFolder = "spmb/documents"
)

// AcademicYearReader is the slice of the academic year repository the
// admissions workflow needs.
type AcademicYearReader interface {
	GetActive(ctx context.Context) (*models.AcademicYear, error)
	GetByID(ctx context.Context, id int64) (*models.AcademicYear, error)
}

// ApplicantStore is the slice of the applicant repository the admissions
// workflow needs.
type ApplicantStore interface {
	Register(ctx context.Context, applicant *models.Applicant) error
	GetByID(ctx context.Context, id int64) (*models.Applicant, error)
	List(ctx context.Context, filter *dto.ApplicantFilter, offset, limit int) ([]*models.Applicant, int64, error)
	GetScoredByAcademicYear(ctx context.Context, academicYearID int64) ([]*models.Applicant, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicantStatus) error
	UpdateScore(ctx context.Context, id int64, score float64) error
}

// SPMBFiles carries the optional uploads of an admissions submission
type SPMBFiles struct {
	Photo            *multipart.FileHeader
	BirthCertificate *multipart.FileHeader
	FamilyCard       *multipart.FileHeader
}

// AdmissionService turns an admissions submission into a durable,
// uniquely-numbered applicant record.
type AdmissionService struct {
	years      AcademicYearReader
	applicants ApplicantStore
	storage    filestorage.FileStorage
	logger     zerolog.Logger
}

// NewAdmissionService creates a new admission service
func NewAdmissionService(years AcademicYearReader, applicants ApplicantStore, storage filestorage.FileStorage, logger zerolog.Logger) *AdmissionService {
	return &AdmissionService{
		years:      years,
		applicants: applicants,
		storage:    storage,
		logger:     logger,
	}
}

// Register runs the whole intake workflow: resolve the active academic
// year, persist uploaded documents, and insert the applicant with a fresh
// registration number. Any failure aborts the submission; documents stored
// before the failure are removed so no partial state survives.
func (s *AdmissionService) Register(ctx context.Context, req *dto.SPMBRegisterRequest, files *SPMBFiles) (*dto.SPMBRegisterResult, error) {
	year, err := s.years.GetActive(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveAcademicYear) {
			return nil, apperrors.NewCustomError(apperrors.ErrNoActiveAcademicYear,
				"no active academic year; please contact the administrator")
		}
		return nil, fmt.Errorf("error resolving active academic year: %w", err)
	}

	if files == nil {
		files = &SPMBFiles{}
	}
	if err := validateDocuments(files); err != nil {
		return nil, err
	}

	dateOfBirth, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date of birth must be a valid date")
	}

	var stored []string
	cleanup := func() {
		for _, url := range stored {
			if delErr := s.storage.DeleteFile(url); delErr != nil {
				s.logger.Warn().Err(delErr).Str("url", url).Msg("Failed to remove stored document after aborted submission")
			}
		}
	}

	saveDocument := func(fh *multipart.FileHeader, folder string) (*string, error) {
		if fh == nil || fh.Size == 0 {
			return nil, nil
		}
		url, saveErr := s.storage.SaveFileWithPath(fh, folder)
		if saveErr != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, saveErr)
		}
		stored = append(stored, url)
		return &url, nil
	}

	photoURL, err := saveDocument(files.Photo, photoFolder)
	if err != nil {
		cleanup()
		return nil, err
	}
	birthCertURL, err := saveDocument(files.BirthCertificate, documentFolder)
	if err != nil {
		cleanup()
		return nil, err
	}
	familyCardURL, err := saveDocument(files.FamilyCard, documentFolder)
	if err != nil {
		cleanup()
		return nil, err
	}

	applicant := &models.Applicant{
		AcademicYearID:      year.ID,
		FullName:            strings.TrimSpace(req.FullName),
		Gender:              models.Gender(req.Gender),
		DateOfBirth:         dateOfBirth,
		PlaceOfBirth:        strings.TrimSpace(req.PlaceOfBirth),
		Address:             strings.TrimSpace(req.Address),
		ParentName:          strings.TrimSpace(req.ParentName),
		ParentPhone:         strings.TrimSpace(req.ParentPhone),
		ParentEmail:         optionalString(req.ParentEmail),
		PreviousSchool:      optionalString(req.PreviousSchool),
		PhotoURL:            photoURL,
		BirthCertificateURL: birthCertURL,
		FamilyCardURL:       familyCardURL,
		Status:              models.StatusRegistered,
	}

	if err := s.applicants.Register(ctx, applicant); err != nil {
		cleanup()
		return nil, fmt.Errorf("error creating applicant: %w", err)
	}

	s.logger.Info().
		Str("registrationNo", applicant.RegistrationNo).
		Int64("academicYearId", year.ID).
		Msg("Applicant registered")

	return &dto.SPMBRegisterResult{
		RegistrationNo: applicant.RegistrationNo,
		FullName:       applicant.FullName,
	}, nil
}

// GetApplicant retrieves one applicant with its academic year attached
func (s *AdmissionService) GetApplicant(ctx context.Context, id int64) (*models.Applicant, error) {
	applicant, err := s.applicants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if year, err := s.years.GetByID(ctx, applicant.AcademicYearID); err == nil {
		applicant.AcademicYear = year
	}

	return applicant, nil
}

// ListApplicants retrieves a page of applicants matching the filter
func (s *AdmissionService) ListApplicants(ctx context.Context, filter *dto.ApplicantFilter) ([]*models.Applicant, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	applicants, total, err := s.applicants.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return applicants, helpers.NewPaginationInfo(total, filter.Page, filter.PageSize), nil
}

// UpdateStatus transitions an applicant between pipeline states
func (s *AdmissionService) UpdateStatus(ctx context.Context, id int64, status models.ApplicantStatus) error {
	if !status.IsValid() {
		return apperrors.NewBadRequestError("unknown applicant status")
	}
	return s.applicants.UpdateStatus(ctx, id, status)
}

// UpdateScore records an applicant's entrance test score
func (s *AdmissionService) UpdateScore(ctx context.Context, id int64, score float64) error {
	if score < 0 || score > 100 {
		return apperrors.NewBadRequestError("test score must be between 0 and 100")
	}
	return s.applicants.UpdateScore(ctx, id, score)
}

// Ranking produces the admissions ranking for the active academic year
func (s *AdmissionService) Ranking(ctx context.Context, threshold float64) ([]dto.RankedApplicant, error) {
	year, err := s.years.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	applicants, err := s.applicants.GetScoredByAcademicYear(ctx, year.ID)
	if err != nil {
		return nil, err
	}

	return RankApplicants(applicants, threshold), nil
}

// ActiveYearApplicants returns every applicant of the active year, for exports
func (s *AdmissionService) ActiveYearApplicants(ctx context.Context) ([]*models.Applicant, error) {
	year, err := s.years.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.applicants.GetScoredByAcademicYear(ctx, year.ID)
}

func validateDocuments(files *SPMBFiles) error {
	checks := []struct {
		fh    *multipart.FileHeader
		field string
		image bool
	}{
		{files.Photo, "photo", true},
		{files.BirthCertificate, "birthCertificate", false},
		{files.FamilyCard, "familyCard", false},
	}

	for _, c := range checks {
		if c.fh == nil || c.fh.Size == 0 {
			continue
		}
		if c.fh.Size > maxDocumentSize {
			return apperrors.NewCustomError(apperrors.ErrInvalidUpload,
				fmt.Sprintf("%s exceeds the 2MB limit", c.field))
		}
		contentType := c.fh.Header.Get("Content-Type")
		if c.image {
			if !strings.HasPrefix(contentType, "image/") {
				return apperrors.NewCustomError(apperrors.ErrInvalidUpload,
					fmt.Sprintf("%s must be an image", c.field))
			}
		} else if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
			return apperrors.NewCustomError(apperrors.ErrInvalidUpload,
				fmt.Sprintf("%s must be an image or a PDF", c.field))
		}
	}

	return nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
