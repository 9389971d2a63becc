package config

// Environment tier names accepted on the command line.
const (
	EnvironmentProduction  = "production"
	EnvironmentStaging     = "staging"
	EnvironmentDevelopment = "development"
)

// KnownEnvironments lists the deployment tiers in the order they are shown to users.
var KnownEnvironments = []string{EnvironmentProduction, EnvironmentStaging, EnvironmentDevelopment}

// EnvironmentDocument is the base agent configuration for one deployment tier.
//
// Optional attributes are pointers (or a nil map) so that an omitted key can
// be told apart from a zero value; defaults are applied by the synthesizer,
// never here.
type EnvironmentDocument struct {
	// Name is the tier the document was loaded under. It is not part of the file.
	Name string `json:"-" yaml:"-"`

	ConfigVersion    *int    `json:"config_version" yaml:"config_version"`
	ServerURL        *string `json:"server_url" yaml:"server_url"`
	WSPath           *string `json:"ws_path,omitempty" yaml:"ws_path,omitempty"`
	EnrollmentAPIKey *string `json:"enrollment_api_key" yaml:"enrollment_api_key"`

	Location            *string         `json:"location,omitempty" yaml:"location,omitempty"`
	Environment         *string         `json:"environment,omitempty" yaml:"environment,omitempty"`
	PollIntervalSeconds *int            `json:"config_poll_interval_seconds,omitempty" yaml:"config_poll_interval_seconds,omitempty"`
	Features            map[string]bool `json:"features,omitempty" yaml:"features,omitempty"`
}

// missingRequired returns the always-required keys absent from the document.
func (d EnvironmentDocument) missingRequired() []string {
	var missing []string
	if d.ConfigVersion == nil {
		missing = append(missing, "config_version")
	}
	if d.ServerURL == nil {
		missing = append(missing, "server_url")
	}
	if d.EnrollmentAPIKey == nil {
		missing = append(missing, "enrollment_api_key")
	}
	return missing
}

// SchemaDocument carries the subset of a JSON Schema used for validation:
// the ordered list of required record fields. Everything else in the file is ignored.
type SchemaDocument struct {
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`
}

// IsEmpty reports whether the schema imposes no required-field constraints.
func (s SchemaDocument) IsEmpty() bool {
	return len(s.Required) == 0
}
