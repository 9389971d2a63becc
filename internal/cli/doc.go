// Package cli holds the pieces shared by the sphere-config commands: flag
// registration and conversion into batch options, and the console output
// for summaries, dry runs and errors.
//
// Results go to the command's stdout; errors are itemized one per line so
// they can be read without rerunning in a debugger:
//
//	Validation errors in config #1:
//	  - field 'server_url': required field is missing or null
//	  - field 'enrollment_api_key': must start with 'sphr_', got: sk_live_01...
package cli
