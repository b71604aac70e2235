package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

var errInvalidID = apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid id")

// BindID binds and validates the `:id` path parameter. Failures wrap
// apperrors.ErrValidationFailed and carry per-field messages.
func BindID(c *gin.Context) (int64, error) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		return 0, validationError(err)
	}
	return param.ID, nil
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]interface{}, len(validationErrs))
		for _, e := range validationErrs {
			fields[e.Field()] = formatValidationError(e)
		}
		return errInvalidID.WithDetails(fields)
	}
	return errInvalidID.WithDetails(map[string]interface{}{"ID": fmt.Sprintf("ID must be a number: %v", err)})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
