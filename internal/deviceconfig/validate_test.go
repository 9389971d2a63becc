package deviceconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphereconfig/internal/config"
)

func TestValidate_MissingRequiredField(t *testing.T) {
	rec := Synthesize(minimalEnv(), Identity{})
	schema := config.SchemaDocument{Required: []string{"config_version", "server_url", "location"}}

	errs := Validate(rec, schema)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "location")
}

func TestValidate_AllPresentNoCredential(t *testing.T) {
	rec := Synthesize(minimalEnv(), Identity{Location: "msk-office-1"})
	rec.EnrollmentAPIKey = nil
	schema := config.SchemaDocument{Required: []string{"config_version", "server_url", "location", "ws_path", "features", "meta"}}

	assert.Empty(t, Validate(rec, schema))
}

func TestValidate_EmptySchema(t *testing.T) {
	rec := Synthesize(minimalEnv(), Identity{})
	assert.Empty(t, Validate(rec, config.SchemaDocument{}))
}

func TestValidate_DeviceIDIsNeverPresent(t *testing.T) {
	rec := Synthesize(minimalEnv(), Identity{WorkstationID: "ws-1", InstanceIndex: intPtr(1)})
	errs := Validate(rec, config.SchemaDocument{Required: []string{"device_id", "no_such_field"}})

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "device_id")
	assert.Contains(t, errs[1], "no_such_field")
}

func TestValidate_CredentialPrefix(t *testing.T) {
	schemas := []config.SchemaDocument{
		{},
		{Required: []string{"enrollment_api_key"}},
		{Required: []string{"server_url", "config_version"}},
	}

	tests := []struct {
		name    string
		key     *string
		wantErr bool
	}{
		{"valid prefix", strPtr("sphr_live_123"), false},
		{"bare prefix", strPtr("sphr_"), false},
		{"wrong prefix", strPtr("sk_live_0123456789abcdef"), true},
		{"uppercase prefix", strPtr("SPHR_abc"), true},
		{"empty key is not checked", strPtr(""), false},
		{"absent key is not checked", nil, false},
	}

	for _, schema := range schemas {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := Synthesize(minimalEnv(), Identity{})
				rec.EnrollmentAPIKey = tt.key

				var formatErrors []ValidationError
				for _, e := range Check(rec, schema) {
					if e.Field == "enrollment_api_key" && e.Message != "required field is missing or null" {
						formatErrors = append(formatErrors, e)
					}
				}

				if tt.wantErr {
					assert.Len(t, formatErrors, 1)
				} else {
					assert.Empty(t, formatErrors)
				}
			})
		}
	}
}

func TestValidate_CredentialPreviewIsTruncated(t *testing.T) {
	rec := Synthesize(minimalEnv(), Identity{})
	rec.EnrollmentAPIKey = strPtr("sk_live_0123456789abcdef")

	errs := Validate(rec, config.SchemaDocument{})

	require.Len(t, errs, 1)
	assert.Equal(t, "field 'enrollment_api_key': must start with 'sphr_', got: sk_live_01...", errs[0])
	assert.NotContains(t, errs[0], "23456789abcdef")
}

func TestValidate_ErrorOrder(t *testing.T) {
	rec := Synthesize(minimalEnv(), Identity{})
	rec.ServerURL = nil
	rec.EnrollmentAPIKey = strPtr("bad")

	errs := Check(rec, config.SchemaDocument{Required: []string{"location", "server_url"}})

	require.Len(t, errs, 3)
	assert.Equal(t, "location", errs[0].Field)
	assert.Equal(t, "server_url", errs[1].Field)
	assert.Equal(t, "enrollment_api_key", errs[2].Field)
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs.Error(), "validation failed: ")
}

func TestValidationErrors_Error(t *testing.T) {
	var none ValidationErrors
	assert.Equal(t, "no validation errors", none.Error())
	assert.False(t, none.HasErrors())

	var one ValidationErrors
	one.Add("server_url", "required field is missing or null")
	assert.Equal(t, "field 'server_url': required field is missing or null", one.Error())

	assert.Equal(t, "plain", ValidationError{Message: "plain"}.Error())
}
