package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/storage/storage.go
//   type Data struct {
//       Recents     []string `json:"recents,omitempty" validate:"omitempty,dive,clock_hhmm"`
//       InstallUUID string   `json:"install_uuid,omitempty" validate:"omitempty,uuid_rfc4122"`
//   }
//
// The custom clock_hhmm tag matches the strict two-digit HH:MM duration
// format accepted everywhere durations are entered or stored.

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ovalbit/eggtimer/internal/engine"
)

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		// clock_hhmm defers to the engine's parser so validation and
		// acceptance can never drift apart.
		_ = validatorInst.RegisterValidation("clock_hhmm", func(fl validator.FieldLevel) bool {
			_, err := engine.ParseClock(fl.Field().String())
			return err == nil
		})
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
