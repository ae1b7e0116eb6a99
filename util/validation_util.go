// util/validation_util.go

package util

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/imdes/console/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New()}
}

// ValidateDataRequestInput runs the required-field checks the request form
// performs before submission. Returns a single aggregated error message.
func (v *ValidationUtil) ValidateDataRequestInput(input model.DataRequestInput) error {
	if err := v.validate.Struct(input); err != nil {
		if invalid, ok := err.(*validator.InvalidValidationError); ok {
			return invalid
		}
		var missing []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			missing = append(missing, fieldErr.Field())
		}
		return fmt.Errorf("required fields missing or invalid: %s", strings.Join(missing, ", "))
	}
	if !input.DataSharingAcknowledged {
		return fmt.Errorf("data sharing agreement must be acknowledged")
	}
	return nil
}

func (v *ValidationUtil) ValidateCredentials(credentials model.Credentials) error {
	if err := v.validate.Struct(credentials); err != nil {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

func (v *ValidationUtil) ValidateSignUpData(data model.SignUpData) error {
	if err := v.validate.Struct(data); err != nil {
		if invalid, ok := err.(*validator.InvalidValidationError); ok {
			return invalid
		}
		var missing []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			missing = append(missing, fieldErr.Field())
		}
		return fmt.Errorf("required fields missing or invalid: %s", strings.Join(missing, ", "))
	}
	return nil
}
