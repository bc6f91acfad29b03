package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pratama/sekolahku/internal/app/models/dto"
	"github.com/pratama/sekolahku/internal/pkg/apperrors"
	"github.com/pratama/sekolahku/internal/pkg/logger"
)

// HandleAPIError maps application errors onto the standard error envelope.
// Controllers hand every service error to this function so status codes and
// messages stay consistent across endpoints. Internal detail never reaches
// the client; what callers see is the sentinel's user-facing message.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Not found
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrApplicantNotFound),
		errors.Is(err, apperrors.ErrAcademicYearNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, userMessage(err, "Resource not found"))

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, 401, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, 401, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respondError(c, 401, dto.ErrorCodeInvalidToken, "Invalid token")

	// Authorization
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, 403, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, 403, dto.ErrorCodeForbidden, "Permission denied")

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrNISAlreadyExists),
		errors.Is(err, apperrors.ErrAcademicYearAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, userMessage(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrRegistrationConflict),
		errors.Is(err, apperrors.ErrAcademicYearHasApplicants),
		errors.Is(err, apperrors.ErrConflict):
		respondError(c, 409, dto.ErrorCodeResourceConflict, userMessage(err, "Request conflicts with current state"))

	// Preconditions and validation
	case errors.Is(err, apperrors.ErrNoActiveAcademicYear):
		respondError(c, 400, dto.ErrorCodeValidationFailed, userMessage(err, "Registration is currently closed"))
	case errors.Is(err, apperrors.ErrInvalidUpload):
		respondError(c, 400, dto.ErrorCodeInvalidFile, userMessage(err, "Invalid upload"))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, 400, dto.ErrorCodeValidationFailed, userMessage(err, "Validation failed"))

	// Storage and everything else
	case errors.Is(err, apperrors.ErrStorageFailure):
		logger.Error().Err(err).Msg("File storage failure")
		respondError(c, 500, dto.ErrorCodeStorageError, "Could not store uploaded file")
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, 500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// userMessage prefers the wrapped CustomError message when one was attached
func userMessage(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
