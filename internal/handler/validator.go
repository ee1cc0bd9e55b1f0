package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/softpaws/bazaar/internal/domain"
	"github.com/softpaws/bazaar/internal/market"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for market query parameters
	_ = v.RegisterValidation("rarity", validateRarity)
	_ = v.RegisterValidation("sortorder", validateSortOrder)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// validateRarity accepts the known rarity tiers, "All", and empty
func validateRarity(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || s == market.RarityAll || domain.ValidRarity(s)
}

// validateSortOrder accepts the three sort orders and empty
func validateSortOrder(fl validator.FieldLevel) bool {
	return market.ValidSort(fl.Field().String())
}

// FormatValidationError formats validation errors into a user-friendly map.
// This prevents leaking internal struct names and provides cleaner error messages.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "rarity":
			errs[field] = "Unknown rarity tier"
		case "sortorder":
			errs[field] = "Unknown sort order"
		case "uuid":
			errs[field] = "Must be a valid ID"
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
