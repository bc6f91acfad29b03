package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	appModels "github.com/pratama/sekolahku/internal/app/models"
	appRepos "github.com/pratama/sekolahku/internal/app/repositories"
	"github.com/pratama/sekolahku/internal/db"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/auth"
)

const defaultAdminEmail = "admin@sekolahku.id"

// CreateDefaultData creates the default admin account and the current
// enrollment period if they don't exist. Errors are collected so one
// failure doesn't block the rest of the seed.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(database.Pool)
	yearRepo := appRepos.NewAcademicYearRepository(database)

	lgr.Info().Msg("Checking/Creating default data (admin account, academic year)...")
	var finalErr error

	// --- Default admin account --- //
	password := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if password == "" {
		password = "admin12345"
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		finalErr = errors.Join(finalErr, err)
	} else {
		admin := &appModels.User{
			Email:        defaultAdminEmail,
			PasswordHash: passwordHash,
			FullName:     "Administrator",
			RoleType:     appModels.RoleAdmin,
			IsActive:     true,
		}
		err = userRepo.Create(ctx, admin)
		if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default admin account")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
		}
	}

	// --- Current enrollment period --- //
	years, err := yearRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing academic years")
		return errors.Join(finalErr, err)
	}

	if len(years) == 0 {
		now := time.Now()
		startYear := now.Year()
		// Indonesian school years run July through June
		if now.Month() < time.July {
			startYear--
		}

		year := &appModels.AcademicYear{
			Name:      fmt.Sprintf("%d/%d", startYear, startYear+1),
			StartDate: time.Date(startYear, time.July, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(startYear+1, time.June, 30, 0, 0, 0, 0, time.UTC),
		}

		if err := yearRepo.Create(ctx, year); err != nil {
			lgr.Error().Err(err).Msg("Error creating default academic year")
			finalErr = errors.Join(finalErr, err)
		} else {
			if err := yearRepo.Activate(ctx, year.ID); err != nil {
				lgr.Error().Err(err).Msg("Error activating default academic year")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("name", year.Name).Msg("Default academic year created and activated")
			}
		}
	}

	return finalErr
}
