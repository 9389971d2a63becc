package deviceconfig

import (
	"fmt"
	"strings"

	"sphereconfig/internal/config"
	pkgstrings "sphereconfig/pkg/strings"
)

// credentialPreviewLen is how much of a malformed key is echoed back.
const credentialPreviewLen = 10

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	return fmt.Sprintf("validation failed: %s", strings.Join(ve.Messages(), "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Messages returns one human-readable line per error, in order.
func (ve ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(ve))
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return messages
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{
		Field:   field,
		Message: message,
	})
}

// Fields looks up serialized field values by name. Record and Document
// implement it; a null value counts as absent.
type Fields interface {
	Field(name string) (interface{}, bool)
}

// Check validates a record against the schema's required fields and the
// enrollment key format. Required-field errors come first, in schema order,
// followed by at most one credential error. The result is empty when the
// record is valid.
func Check(rec Fields, schema config.SchemaDocument) ValidationErrors {
	var errs ValidationErrors

	for _, field := range schema.Required {
		if _, ok := rec.Field(field); !ok {
			errs.Add(field, "required field is missing or null")
		}
	}

	// The prefix rule applies with or without a schema.
	if v, ok := rec.Field("enrollment_api_key"); ok {
		key := fmt.Sprint(v)
		if key != "" && !strings.HasPrefix(key, CredentialPrefix) {
			short := pkgstrings.Prefix(key, credentialPreviewLen)
			errs.Add("enrollment_api_key",
				fmt.Sprintf("must start with '%s', got: %s...", CredentialPrefix, short))
		}
	}

	return errs
}

// Validate returns the findings of Check as plain strings.
func Validate(rec Fields, schema config.SchemaDocument) []string {
	return Check(rec, schema).Messages()
}
