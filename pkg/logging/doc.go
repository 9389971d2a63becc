// Package logging provides structured logging for sphere-config on top of
// Go's standard slog package.
//
// Every entry carries a subsystem attribute so operators can tell the
// loader, the batch driver and the writer apart when running with --debug.
// Log output goes to stderr; the generated configs and the run summary go
// to stdout and are never mixed with log lines.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelWarn, os.Stderr)
//
//	logging.Info("ConfigStore", "Loaded environment %s from %s", name, path)
//	logging.Error("Batch", err, "Unit %d failed validation", i)
//
// A Logger bound to a subsystem and fixed attributes is available through
// For:
//
//	log := logging.For("Batch", slog.String("run_id", runID))
//	log.Debug("Synthesized unit %d", i)
package logging
