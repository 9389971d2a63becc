package cli

import (
	"github.com/spf13/pflag"

	"sphereconfig/internal/batch"
	"sphereconfig/internal/config"
)

// GenerateFlags holds the flag values of the generate command.
type GenerateFlags struct {
	Environment   string
	WorkstationID string
	InstanceIndex int
	Location      string
	LDPlayerName  string
	Count         int
	StartIndex    int
	OutputDir     string
	OutputFile    string
	Format        string
	DryRun        bool
}

// RegisterGenerateFlags registers the generate flags on fs.
//
// The registered flags are:
//   - --env: Target environment (production, staging, development), required
//   - --workstation-id: Workstation (PC host) ID
//   - --instance-index: instance index, ignored when --workstation-id is set
//   - --location: Location code, e.g. msk-office-1
//   - --ldplayer-name: LDPlayer instance name
//   - --count: Number of configs to generate, default 1
//   - --start-index: First instance index for batch generation, default 0
//   - --output-dir: Directory for generated configs, default ./output
//   - --output-file: File name for a single config
//   - --format: Artifact format (json, yaml), default json
//   - --dry-run: Validate and print configs without writing files
func RegisterGenerateFlags(fs *pflag.FlagSet, flags *GenerateFlags) {
	fs.StringVar(&flags.Environment, "env", "", "Target environment (production, staging, development)")
	fs.StringVar(&flags.WorkstationID, "workstation-id", "", "Workstation (PC host) ID")
	fs.IntVar(&flags.InstanceIndex, "instance-index", 0, "Instance index for a config without --workstation-id (0-based)")
	fs.StringVar(&flags.Location, "location", "", "Location code (e.g. msk-office-1)")
	fs.StringVar(&flags.LDPlayerName, "ldplayer-name", "", "LDPlayer instance name")
	fs.IntVar(&flags.Count, "count", 1, "Number of configs to generate (batch generation, at most 10000)")
	fs.IntVar(&flags.StartIndex, "start-index", 0, "First instance_index when --workstation-id is set")
	fs.StringVar(&flags.OutputDir, "output-dir", batch.DefaultOutputDir, "Directory for generated configs")
	fs.StringVar(&flags.OutputFile, "output-file", "", "File name for a single config (default: sphere-agent-config.json)")
	fs.StringVar(&flags.Format, "format", string(batch.FormatJSON), "Artifact format (json, yaml)")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "Validate and print configs without writing files")
}

// ToOptions converts the flag values into batch options. fs is consulted to
// tell an explicit --instance-index 0 apart from an omitted one.
func (f *GenerateFlags) ToOptions(fs *pflag.FlagSet) (batch.Options, error) {
	if err := ValidateOneOf("env", f.Environment, config.KnownEnvironments); err != nil {
		return batch.Options{}, err
	}

	format, err := batch.ParseFormat(f.Format)
	if err != nil {
		return batch.Options{}, err
	}

	opts := batch.Options{
		Environment:   f.Environment,
		WorkstationID: f.WorkstationID,
		Location:      f.Location,
		DisplayName:   f.LDPlayerName,
		Count:         f.Count,
		StartIndex:    f.StartIndex,
		OutputDir:     f.OutputDir,
		OutputFile:    f.OutputFile,
		Format:        format,
		DryRun:        f.DryRun,
	}
	if fs.Changed("instance-index") {
		idx := f.InstanceIndex
		opts.InstanceIndex = &idx
	}

	if err := opts.Validate(); err != nil {
		return batch.Options{}, err
	}
	return opts, nil
}
