package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"sphereconfig/internal/config"
	"sphereconfig/internal/deviceconfig"
	"sphereconfig/pkg/logging"
)

const (
	// DefaultOutputDir is used when Options.OutputDir is empty.
	DefaultOutputDir = "./output"

	// DefaultFileStem names generated files: <stem>.json, or <stem>-NNN.json in a batch.
	DefaultFileStem = "sphere-agent-config"

	// MaxCount bounds the number of configs in one batch.
	MaxCount = 10000
)

// checkRecord validates one unit; replaced in tests.
var checkRecord = deviceconfig.Check

// Source provides the documents a run is built from.
type Source interface {
	LoadEnvironment(name string) (config.EnvironmentDocument, error)
	LoadSchema() (config.SchemaDocument, error)
}

// Options describes one generation run.
type Options struct {
	Environment string

	WorkstationID string
	InstanceIndex *int // Used for every unit when WorkstationID is empty
	Location      string
	DisplayName   string

	Count      int // Defaults to 1
	StartIndex int // First instance index when WorkstationID is set

	OutputDir  string // Defaults to DefaultOutputDir
	OutputFile string // Only honoured when Count is 1
	Format     Format // Defaults to FormatJSON

	// DryRun synthesizes and validates every unit but writes nothing.
	DryRun bool
}

// withDefaults returns a copy with zero values replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Count == 0 {
		o.Count = 1
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.Format == "" {
		o.Format = FormatJSON
	}
	return o
}

// Validate checks the options for values no run can satisfy.
func (o Options) Validate() error {
	if o.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if o.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", o.Count)
	}
	if o.Count > MaxCount {
		return fmt.Errorf("count must be at most %d, got %d", MaxCount, o.Count)
	}
	if o.StartIndex < 0 {
		return fmt.Errorf("start index must not be negative, got %d", o.StartIndex)
	}
	if o.InstanceIndex != nil && *o.InstanceIndex < 0 {
		return fmt.Errorf("instance index must not be negative, got %d", *o.InstanceIndex)
	}
	if _, err := ParseFormat(string(o.Format)); err != nil {
		return err
	}
	return nil
}

// Unit is one planned device configuration.
type Unit struct {
	Offset   int // Position within the batch
	FileName string
	Record   deviceconfig.Record
}

// Result summarizes a completed run.
type Result struct {
	RunID     string
	OutputDir string // Absolute when it could be resolved
	Units     []Unit
	Files     []string // Paths written, empty on a dry run
}

// instanceIndex derives the index of the unit at offset. With a workstation
// the batch is numbered from StartIndex; without one every unit repeats the
// explicit InstanceIndex, which may be nil.
func (o Options) instanceIndex(offset int) *int {
	if o.WorkstationID != "" {
		idx := o.StartIndex + offset
		return &idx
	}
	if o.InstanceIndex == nil {
		return nil
	}
	idx := *o.InstanceIndex
	return &idx
}

// fileNumber is the suffix of the unit's file in a multi-unit batch: the
// instance index when numbering from a workstation, otherwise the offset,
// since the explicit index repeats across units and cannot keep names apart.
func (o Options) fileNumber(offset int, idx *int) int {
	if o.WorkstationID != "" && idx != nil {
		return *idx
	}
	return offset
}

// displayName returns the explicit name, or Farm-NNN for multi-unit batches.
func (o Options) displayName(offset int, idx *int) string {
	if o.DisplayName != "" || o.Count <= 1 {
		return o.DisplayName
	}
	n := offset
	if idx != nil {
		n = *idx
	}
	return fmt.Sprintf("Farm-%03d", n)
}

// fileName returns the artifact name for the unit at offset, as the Writer
// will store it.
func (o Options) fileName(offset int, idx *int) string {
	ext := o.Format.Extension()
	if o.Count == 1 {
		if o.OutputFile != "" {
			return sanitizeFilename(o.OutputFile)
		}
		return DefaultFileStem + ext
	}
	return fmt.Sprintf("%s-%03d%s", DefaultFileStem, o.fileNumber(offset, idx), ext)
}

// Plan synthesizes and validates every unit of a batch. It stops at the first
// unit that fails validation and returns a *UnitValidationError for it.
func Plan(env config.EnvironmentDocument, schema config.SchemaDocument, opts Options) ([]Unit, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var units []Unit
	for offset := 0; offset < opts.Count; offset++ {
		idx := opts.instanceIndex(offset)

		rec := deviceconfig.Synthesize(env, deviceconfig.Identity{
			WorkstationID: opts.WorkstationID,
			InstanceIndex: idx,
			Location:      opts.Location,
			DisplayName:   opts.displayName(offset, idx),
		})

		if errs := checkRecord(rec, schema); errs.HasErrors() {
			return nil, &UnitValidationError{Unit: offset, Errors: errs}
		}

		units = append(units, Unit{
			Offset:   offset,
			FileName: opts.fileName(offset, idx),
			Record:   rec,
		})
	}
	return units, nil
}

// Driver runs generation batches against a document source.
type Driver struct {
	source Source
}

// NewDriver creates a Driver reading documents from source.
func NewDriver(source Source) *Driver {
	return &Driver{source: source}
}

// Run loads the environment and schema once, plans the whole batch and only
// then writes the files. A validation failure therefore leaves the output
// directory untouched. If a write fails, files already written by this run
// are removed before the *WriteError is returned.
func (d *Driver) Run(ctx context.Context, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	runID := uuid.NewString()
	log := logging.For("Batch", slog.String("run_id", runID), slog.String("environment", opts.Environment))

	env, err := d.source.LoadEnvironment(opts.Environment)
	if err != nil {
		return Result{}, err
	}
	schema, err := d.source.LoadSchema()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load schema: %w", err)
	}

	if opts.OutputFile != "" && opts.Count > 1 {
		log.Warn("Ignoring output file %q for a batch of %d configs", opts.OutputFile, opts.Count)
	}
	if opts.InstanceIndex != nil && opts.WorkstationID != "" {
		log.Warn("Ignoring instance index %d: configs for workstation %s are numbered from start index %d",
			*opts.InstanceIndex, opts.WorkstationID, opts.StartIndex)
	}

	units, err := Plan(env, schema, opts)
	if err != nil {
		var unitErr *UnitValidationError
		if errors.As(err, &unitErr) {
			log.Info("Batch aborted at config #%d, nothing written", unitErr.Unit)
		}
		return Result{}, err
	}
	log.Debug("Planned %d configs", len(units))

	result := Result{
		RunID:     runID,
		OutputDir: absPath(opts.OutputDir),
		Units:     units,
		Files:     []string{},
	}
	if opts.DryRun {
		log.Info("Dry run, %d configs validated and not written", len(units))
		return result, nil
	}

	writer := NewWriter(opts.OutputDir, opts.Format)
	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			rolledBack := rollback(writer, result.Files, log)
			return Result{}, &WriteError{Unit: unit.Offset, Err: err, RolledBack: rolledBack}
		}

		path, err := writer.Write(unit.Record, unit.FileName)
		if err != nil {
			rolledBack := rollback(writer, result.Files, log)
			return Result{}, &WriteError{Unit: unit.Offset, Err: err, RolledBack: rolledBack}
		}
		result.Files = append(result.Files, path)
	}

	log.Info("Wrote %d configs to %s", len(result.Files), result.OutputDir)
	return result, nil
}

// rollback removes files written earlier in a failed run and returns those removed.
func rollback(writer *Writer, written []string, log logging.Logger) []string {
	removed := make([]string, 0, len(written))
	for _, path := range written {
		if err := writer.Remove(path); err != nil {
			log.Error(err, "Could not roll back %s", path)
			continue
		}
		removed = append(removed, path)
	}
	return removed
}

func absPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
