package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/logger"
)

// Templates rendered by HandlePageError
const (
	NotFoundTemplate  = "not_found.html"
	ForbiddenTemplate = "forbidden.html"
	ErrorTemplate     = "error.html"
)

// ForbiddenMessage is the static body shown for lessons of courses not bought
const ForbiddenMessage = "Доступ ограничен"

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		message := "Resource not found"
		if errors.As(err, &customErr) {
			message = customErr.Message
		}
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		message := "Permission denied"
		if errors.As(err, &customErr) {
			message = customErr.Message
		}
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithSeverity(dto.ErrorSeverityWarning)
		if errors.As(err, &customErr) && customErr.Details != nil {
			detail = detail.WithDetails(customErr.Details)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// HandlePageError renders the HTML page matching err
func HandlePageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound), errors.Is(err, apperrors.ErrValidationFailed):
		c.HTML(http.StatusNotFound, NotFoundTemplate, gin.H{})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.HTML(http.StatusForbidden, ForbiddenTemplate, gin.H{"message": ForbiddenMessage})
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled page error")
		c.HTML(http.StatusInternalServerError, ErrorTemplate, gin.H{})
	}
}
