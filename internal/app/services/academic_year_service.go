package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pratama/sekolahku/internal/app/models"
	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/app/repositories"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/helpers"
)

// AcademicYearService manages enrollment periods
type AcademicYearService struct {
	yearRepo *repositories.AcademicYearRepository
	logger   zerolog.Logger
}

// NewAcademicYearService creates a new academic year service
func NewAcademicYearService(yearRepo *repositories.AcademicYearRepository, logger zerolog.Logger) *AcademicYearService {
	return &AcademicYearService{yearRepo: yearRepo, logger: logger}
}

// Create opens a new enrollment period. The period starts inactive.
func (s *AcademicYearService) Create(ctx context.Context, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	year := &models.AcademicYear{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if err := s.yearRepo.Create(ctx, year); err != nil {
		return nil, fmt.Errorf("error creating academic year: %w", err)
	}

	s.logger.Info().Str("name", year.Name).Int64("id", year.ID).Msg("Academic year created")
	return year, nil
}

// GetByID retrieves a single enrollment period
func (s *AcademicYearService) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return s.yearRepo.GetByID(ctx, id)
}

// GetAll lists every enrollment period, newest first
func (s *AcademicYearService) GetAll(ctx context.Context) ([]*models.AcademicYear, error) {
	return s.yearRepo.GetAll(ctx)
}

// GetActive retrieves the period currently open for registration
func (s *AcademicYearService) GetActive(ctx context.Context) (*models.AcademicYear, error) {
	return s.yearRepo.GetActive(ctx)
}

// Update edits the name or dates of a period
func (s *AcademicYearService) Update(ctx context.Context, id int64, req *dto.UpdateAcademicYearRequest) (*models.AcademicYear, error) {
	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	year, err := s.yearRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	year.Name = req.Name
	year.StartDate = startDate
	year.EndDate = endDate

	if err := s.yearRepo.Update(ctx, year); err != nil {
		return nil, fmt.Errorf("error updating academic year: %w", err)
	}

	return year, nil
}

// Activate marks one period as the registration target and deactivates
// every other period in the same step.
func (s *AcademicYearService) Activate(ctx context.Context, id int64) error {
	if err := s.yearRepo.Activate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("Academic year activated")
	return nil
}

// Delete removes a period that has no registered applicants
func (s *AcademicYearService) Delete(ctx context.Context, id int64) error {
	return s.yearRepo.Delete(ctx, id)
}

func parsePeriod(start, end string) (startDate, endDate time.Time, err error) {
	startDate, err = helpers.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("start date must be a valid date")
	}
	endDate, err = helpers.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("end date must be a valid date")
	}
	if !endDate.After(startDate) {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("end date must come after start date")
	}
	return startDate, endDate, nil
}
