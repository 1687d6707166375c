// Package validation provides struct validation for vlanreg payloads.
//
// It wraps go-playground/validator and registers the VLAN-specific tags used
// by the registry:
//   - vlanid: integer within the configured 802.1Q bounds
//
// # Usage Example
//
//	v := validation.New(2, 4094)
//	result := v.Struct(req)
//	if !result.Valid {
//	    for _, e := range result.Errors {
//	        fmt.Printf("%s: %s\n", e.Field, e.Message)
//	    }
//	}
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates decoded payloads against struct tags.
type Validator struct {
	structValidator *validator.Validate

	minID int
	maxID int
}

// ValidationError represents a single validation error with field-level details.
type ValidationError struct {
	// Field is the JSON name of the field that failed validation
	Field string `json:"field"`

	// Tag is the validation rule that failed
	Tag string `json:"tag"`

	// Message describes why the validation failed
	Message string `json:"message"`

	// Value is the invalid value (optional)
	Value interface{} `json:"value,omitempty"`
}

// ValidationResult represents the complete result of a validation operation.
type ValidationResult struct {
	// Valid is true if validation passed
	Valid bool `json:"valid"`

	// Errors contains all validation errors found
	Errors []ValidationError `json:"errors,omitempty"`
}

// New creates a Validator accepting VLAN IDs in [minID, maxID].
func New(minID, maxID int) *Validator {
	v := &Validator{
		structValidator: validator.New(validator.WithRequiredStructEnabled()),
		minID:           minID,
		maxID:           maxID,
	}

	// Report JSON field names instead of Go field names
	v.structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs
	_ = v.structValidator.RegisterValidation("vlanid", v.validateVLANID)

	return v
}

// Bounds returns the accepted VLAN ID range.
func (v *Validator) Bounds() (int, int) {
	return v.minID, v.maxID
}

// Struct validates s and collects every failing field.
func (v *Validator) Struct(s interface{}) *ValidationResult {
	err := v.structValidator.Struct(s)
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{Field: "document", Tag: "struct", Message: err.Error()},
			},
		}
	}

	result := &ValidationResult{Valid: false}
	for _, fe := range validationErrs {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: v.message(fe),
			Value:   fe.Value(),
		})
	}
	return result
}

// HasTag reports whether any error in the result failed the given tag.
func (r *ValidationResult) HasTag(tag string) bool {
	for _, e := range r.Errors {
		if e.Tag == tag {
			return true
		}
	}
	return false
}

func (v *Validator) validateVLANID(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		id := field.Int()
		return id >= int64(v.minID) && id <= int64(v.maxID)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		id := field.Uint()
		return id >= uint64(v.minID) && id <= uint64(v.maxID)
	default:
		return false
	}
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "vlanid":
		return fmt.Sprintf("must be between %d and %d", v.minID, v.maxID)
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
