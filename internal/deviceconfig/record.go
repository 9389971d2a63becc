package deviceconfig

// Defaults applied when the environment document leaves a value out.
const (
	DefaultWSPath              = "/ws/android"
	DefaultEnvironment         = "production"
	DefaultPollIntervalSeconds = 86400

	// CloneSourceAutoGenerated marks records produced for a workstation clone.
	CloneSourceAutoGenerated = "auto-generated"

	// CredentialPrefix is the literal prefix every enrollment API key carries.
	CredentialPrefix = "sphr_"
)

// DefaultFeatures returns a fresh copy of the feature set used when the
// environment document defines none.
func DefaultFeatures() map[string]bool {
	return map[string]bool{
		"telemetry_enabled": true,
		"streaming_enabled": true,
		"ota_enabled":       true,
		"auto_register":     true,
	}
}

// Record is the agent configuration written for one device. Field order
// here is the order of keys in the serialized document.
//
// Nullable attributes are pointers and serialize as null when unset.
// DeviceID is always nil: it is assigned later by the enrollment service.
type Record struct {
	ConfigVersion       *int            `json:"config_version"`
	ServerURL           *string         `json:"server_url"`
	WSPath              string          `json:"ws_path"`
	EnrollmentAPIKey    *string         `json:"enrollment_api_key"`
	DeviceID            *string         `json:"device_id"`
	WorkstationID       *string         `json:"workstation_id"`
	InstanceIndex       *int            `json:"instance_index"`
	Location            *string         `json:"location"`
	Environment         string          `json:"environment"`
	PollIntervalSeconds int             `json:"config_poll_interval_seconds"`
	Features            map[string]bool `json:"features"`
	Meta                Meta            `json:"meta"`
}

// Meta holds provenance details that the agent ignores but operators read.
type Meta struct {
	LDPlayerName string `json:"ldplayer_name,omitempty"`
	CloneSource  string `json:"clone_source,omitempty"`
}

// Field returns the value stored under the serialized field name and
// whether it is present and non-null. Unknown names are reported absent.
func (r Record) Field(name string) (interface{}, bool) {
	switch name {
	case "config_version":
		if r.ConfigVersion == nil {
			return nil, false
		}
		return *r.ConfigVersion, true
	case "server_url":
		return derefString(r.ServerURL)
	case "ws_path":
		return r.WSPath, true
	case "enrollment_api_key":
		return derefString(r.EnrollmentAPIKey)
	case "device_id":
		return derefString(r.DeviceID)
	case "workstation_id":
		return derefString(r.WorkstationID)
	case "instance_index":
		if r.InstanceIndex == nil {
			return nil, false
		}
		return *r.InstanceIndex, true
	case "location":
		return derefString(r.Location)
	case "environment":
		return r.Environment, true
	case "config_poll_interval_seconds":
		return r.PollIntervalSeconds, true
	case "features":
		if r.Features == nil {
			return nil, false
		}
		return r.Features, true
	case "meta":
		return r.Meta, true
	default:
		return nil, false
	}
}

func derefString(s *string) (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	return *s, true
}
