package models

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

var requiredMessages = map[string]string{
	"EventName": "Event name is required",
	"DateTime":  "Date and time are required",
	"Location":  "Location is required",
}

// ValidateForPublish runs the checks a caller must pass before publishing.
// The first failing rule is reported, wrapped in common.ErrValidationFault.
func ValidateForPublish(f EventFields) error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return fmt.Errorf("%w: %v", common.ErrValidationFault, err)
		}
		fe := verrs[0]
		if msg, ok := requiredMessages[fe.StructField()]; ok && fe.Tag() == "required" {
			return fmt.Errorf("%w: %s", common.ErrValidationFault, msg)
		}
		return fmt.Errorf("%w: %s must satisfy %s", common.ErrValidationFault, fe.Field(), fe.Tag())
	}

	if f.PageBackgroundType != BackgroundImage && f.PageBackgroundID != nil &&
		*f.PageBackgroundID != "" && !IsGradient(*f.PageBackgroundID) {
		return fmt.Errorf("%w: unknown background gradient %q", common.ErrValidationFault, *f.PageBackgroundID)
	}
	return nil
}

// ValidatePhone checks the contact number format. Empty is allowed.
// Form-level only: publishing does not require it.
func ValidatePhone(s string) error {
	if s == "" || phonePattern.MatchString(s) {
		return nil
	}
	return fmt.Errorf("%w: Invalid phone number", common.ErrValidationFault)
}
