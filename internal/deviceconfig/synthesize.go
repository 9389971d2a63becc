package deviceconfig

import (
	"sphereconfig/internal/config"
)

// Identity carries the per-device parameters merged into an environment.
// Empty strings and a nil InstanceIndex mean "not supplied".
type Identity struct {
	WorkstationID string
	InstanceIndex *int
	Location      string
	DisplayName   string
}

// Synthesize merges an environment document with a device identity into a
// new Record. It has no side effects; equal inputs give equal records.
//
// config_version, server_url and enrollment_api_key are taken from the
// environment as-is and are never overridden by the identity.
func Synthesize(env config.EnvironmentDocument, id Identity) Record {
	rec := Record{
		ConfigVersion:       copyInt(env.ConfigVersion),
		ServerURL:           copyString(env.ServerURL),
		WSPath:              DefaultWSPath,
		EnrollmentAPIKey:    copyString(env.EnrollmentAPIKey),
		DeviceID:            nil,
		Environment:         DefaultEnvironment,
		PollIntervalSeconds: DefaultPollIntervalSeconds,
	}

	if env.WSPath != nil {
		rec.WSPath = *env.WSPath
	}
	if env.Environment != nil {
		rec.Environment = *env.Environment
	}
	if env.PollIntervalSeconds != nil {
		rec.PollIntervalSeconds = *env.PollIntervalSeconds
	}

	if env.Features != nil {
		rec.Features = make(map[string]bool, len(env.Features))
		for flag, enabled := range env.Features {
			rec.Features[flag] = enabled
		}
	} else {
		rec.Features = DefaultFeatures()
	}

	if id.WorkstationID != "" {
		rec.WorkstationID = copyString(&id.WorkstationID)
	}
	rec.InstanceIndex = copyInt(id.InstanceIndex)

	// Device-level location wins over the environment default.
	if id.Location != "" {
		rec.Location = copyString(&id.Location)
	} else {
		rec.Location = copyString(env.Location)
	}

	if id.DisplayName != "" {
		rec.Meta.LDPlayerName = id.DisplayName
	}
	if id.WorkstationID != "" && id.InstanceIndex != nil {
		rec.Meta.CloneSource = CloneSourceAutoGenerated
	}

	return rec
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
