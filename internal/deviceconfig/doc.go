// Package deviceconfig turns an environment document and a device identity
// into a per-device agent configuration record, and checks that record
// before it is persisted.
//
// Synthesize and Check are pure functions. Defaults filled by Synthesize:
//
//	ws_path                       /ws/android
//	environment                   "production"
//	config_poll_interval_seconds  86400
//	features                      telemetry, streaming, ota, auto_register (all true)
//
// Check enforces the schema's required fields and requires a non-empty
// enrollment_api_key to start with "sphr_". Nothing else is validated.
package deviceconfig
