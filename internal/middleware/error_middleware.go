package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	detail, status := classifyError(err)

	// Carry structured context from CustomError into the response body
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail.Message = custom.Message
		}
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	}

	c.JSON(status, dto.APIResponse{Error: detail})
}

func classifyError(err error) (*dto.ErrorDetail, int) {
	switch {
	// Not found family
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrUniversityNotFound),
		errors.Is(err, apperrors.ErrProgramNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrConversationNotFound),
		errors.Is(err, apperrors.ErrDocumentTypeNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"), http.StatusNotFound

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"), http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled"), http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"), http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked"), http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"), http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"), http.StatusUnauthorized

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"), http.StatusForbidden
	case errors.Is(err, apperrors.ErrProfileIncomplete):
		return dto.NewErrorDetail(dto.ErrorCodeProfileIncomplete, "Profile is incomplete"), http.StatusForbidden

	// Onboarding state
	case errors.Is(err, apperrors.ErrPersonalInfoMissing):
		return dto.NewErrorDetail(dto.ErrorCodePersonalInfoMissing, "Personal information must be submitted first"), http.StatusConflict
	case errors.Is(err, apperrors.ErrOnboardingComplete):
		return dto.NewErrorDetail(dto.ErrorCodeOnboardingComplete, "Onboarding already completed"), http.StatusConflict

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"), http.StatusConflict
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Application for this program already exists"), http.StatusConflict
	case errors.Is(err, apperrors.ErrResourceAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists"), http.StatusConflict

	// File uploads
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return dto.NewErrorDetail(dto.ErrorCodeFileTooLarge, "File exceeds maximum allowed size"), http.StatusRequestEntityTooLarge
	case errors.Is(err, apperrors.ErrFileTypeNotAllowed):
		return dto.NewErrorDetail(dto.ErrorCodeFileTypeNotAllowed, "File type not allowed"), http.StatusBadRequest

	// Validation and bad input
	case errors.Is(err, apperrors.ErrValidationFailed):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed"), http.StatusBadRequest
	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidEmail),
		errors.Is(err, apperrors.ErrInvalidPassword):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request"), http.StatusBadRequest

	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"), http.StatusInternalServerError
	}
}
