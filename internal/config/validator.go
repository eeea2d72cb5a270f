package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers PeopleDesk-specific validation rules.
// Must be called before validating Config.
func RegisterCustomValidators(v *validator.Validate) error {
	// clock_hhmm: validates a 24-hour "HH:MM" wall-clock string.
	if err := v.RegisterValidation("clock_hhmm", validateClockHHMM); err != nil {
		return fmt.Errorf("failed to register clock_hhmm validator: %w", err)
	}
	return nil
}

// validateClockHHMM validates a 24-hour HH:MM time-of-day string.
func validateClockHHMM(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

// Validate validates the Config using struct tags and custom rules.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterCustomValidators(v); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	if c.Session.Timeout < 0 {
		return fmt.Errorf("config: session.timeout must not be negative (got %s)", c.Session.Timeout)
	}
	return nil
}

// formatValidationErrors converts validator errors into actionable messages.
func formatValidationErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			return fmt.Errorf("config: %s must be one of [%s] (got %q)", fe.Namespace(), fe.Param(), fe.Value())
		case "clock_hhmm":
			return fmt.Errorf("config: %s must be a 24-hour HH:MM time (got %q)", fe.Namespace(), fe.Value())
		default:
			return fmt.Errorf("config: %s failed %s validation", fe.Namespace(), fe.Tag())
		}
	}
	return err
}
