package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sphereconfig/internal/batch"
	"sphereconfig/internal/deviceconfig"
	pkgstrings "sphereconfig/pkg/strings"
)

// DeviceConfigPath is where the agent expects its config on the device.
const DeviceConfigPath = "/sdcard/sphere-agent-config.json"

// PrintSummary writes the outcome of a successful run: how many configs were
// generated, where they are, a table of the files and a deployment hint.
func PrintSummary(w io.Writer, result batch.Result) {
	fmt.Fprintln(w, text.FgGreen.Sprint(FormatSuccess(fmt.Sprintf("Generated configs: %d", len(result.Files)))))
	fmt.Fprintf(w, "Directory: %s\n", result.OutputDir)

	if len(result.Units) > 0 {
		fmt.Fprintln(w, UnitsTable(result.Units))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, DeployHint(result))
}

// DeployHint tells the operator how to get the generated configs onto devices.
// A single config is named by the path actually written, when there is one.
func DeployHint(result batch.Result) string {
	if len(result.Units) == 1 {
		path := filepath.Join(result.OutputDir, result.Units[0].FileName)
		if len(result.Files) == 1 {
			path = result.Files[0]
		}
		return fmt.Sprintf("Deploy: adb push %s %s", path, DeviceConfigPath)
	}
	return fmt.Sprintf("Batch deploy via PC-Agent: scripts read configs from %s/", result.OutputDir)
}

// UnitsTable renders one row per planned unit.
func UnitsTable(units []batch.Unit) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "File", "Instance", "Name", "Location"})
	for _, u := range units {
		t.AppendRow(table.Row{
			u.Offset,
			u.FileName,
			intOrDash(u.Record.InstanceIndex),
			pkgstrings.Truncate(orDash(u.Record.Meta.LDPlayerName), pkgstrings.DefaultCellMaxLen),
			pkgstrings.Truncate(stringOrDash(u.Record.Location), pkgstrings.DefaultCellMaxLen),
		})
	}
	return t.Render()
}

// PrintDryRun writes every planned record to w instead of to disk.
func PrintDryRun(w io.Writer, result batch.Result, format batch.Format) error {
	for _, u := range result.Units {
		data, err := format.Marshal(u.Record)
		if err != nil {
			return fmt.Errorf("failed to encode config #%d: %w", u.Offset, err)
		}
		fmt.Fprintf(w, "# %s\n%s", u.FileName, data)
	}
	fmt.Fprintln(w, text.FgYellow.Sprint(FormatWarning(fmt.Sprintf("Dry run: %d config(s) validated, nothing written", len(result.Units)))))
	return nil
}

// ReportError writes an itemized description of err to w.
func ReportError(w io.Writer, err error) {
	var unitErr *batch.UnitValidationError
	var writeErr *batch.WriteError

	switch {
	case errors.As(err, &unitErr):
		fmt.Fprintf(w, "Validation errors in config #%d:\n", unitErr.Unit)
		writeItems(w, unitErr.Errors.Messages())
	case errors.As(err, &writeErr):
		fmt.Fprintln(w, FormatError(writeErr.Err))
		for _, path := range writeErr.RolledBack {
			fmt.Fprintf(w, "  - removed %s\n", path)
		}
	default:
		var validationErrs deviceconfig.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(w, "Validation errors:")
			writeItems(w, validationErrs.Messages())
			return
		}
		fmt.Fprintln(w, FormatError(err))
	}
}

func writeItems(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func stringOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return orDash(*s)
}

func intOrDash(i *int) string {
	if i == nil {
		return "-"
	}
	return strconv.Itoa(*i)
}
