package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"huddle/internal/availability"
	"huddle/pkg/hours"
	"huddle/pkg/logger"
	"huddle/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks a booking's identity fields. The hour window has its own
// check (ValidateRange) so the service can reject it with the range error
// kind; the overlap check against other records belongs to the ledger's
// critical section, not here.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

// ValidateRange enforces the window invariant: 0 <= start < end <= 24 and at
// most two hours long. An invalid window is rejected, never clamped.
func (v *BookingValidator) ValidateRange(startHour, endHour int) error {
	if startHour < 0 || startHour >= hours.PerDay {
		return ValidationErrors{
			ValidationError{
				Field:   "StartHour",
				Message: fmt.Sprintf("start hour must be in [0,%d), got %d", hours.PerDay, startHour),
			},
		}
	}
	if endHour > hours.PerDay {
		return ValidationErrors{
			ValidationError{
				Field:   "EndHour",
				Message: fmt.Sprintf("end hour must be at most %d, got %d", hours.PerDay, endHour),
			},
		}
	}
	if endHour <= startHour {
		return ValidationErrors{
			ValidationError{
				Field:   "EndHour",
				Message: "end hour must be after start hour",
			},
		}
	}
	if endHour-startHour > availability.MaxSlotHours {
		return ValidationErrors{
			ValidationError{
				Field:   "EndHour",
				Message: fmt.Sprintf("reservation cannot exceed %d hours", availability.MaxSlotHours),
			},
		}
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
