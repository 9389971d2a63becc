// Package config loads the read-only inputs of a generation run: one
// environment document per deployment tier and an optional schema document.
//
// All documents live below an explicit configuration root handed to
// NewStore; nothing is resolved relative to the executable:
//
//	<root>/
//	├── schema.json                  optional, {"required": [...]}
//	└── environments/
//	    ├── production.json
//	    ├── staging.json
//	    └── development.yaml
//
// JSON documents may contain // and /* */ comments and trailing commas.
// YAML documents use the same key names as the JSON ones.
//
// Loading rules:
//   - An unknown environment is an error (*EnvironmentNotFoundError, matching
//     ErrEnvironmentNotFound). There is no fallback tier.
//   - A missing schema is not an error; LoadSchema returns an empty document.
//   - An environment document must contain config_version, server_url and
//     enrollment_api_key; otherwise *MissingFieldError is returned.
package config
