package batch

import (
	"fmt"

	"sphereconfig/internal/deviceconfig"
)

// UnitValidationError reports the unit that stopped a batch. No file of the
// batch has been written when it is returned.
type UnitValidationError struct {
	Unit   int // Zero-based position in the batch
	Errors deviceconfig.ValidationErrors
}

func (e *UnitValidationError) Error() string {
	return fmt.Sprintf("config #%d failed validation: %s", e.Unit, e.Errors.Error())
}

func (e *UnitValidationError) Unwrap() error {
	return e.Errors
}

// WriteError reports a failed write. Files written earlier in the same run
// have been removed again; RolledBack lists them.
type WriteError struct {
	Unit       int
	Err        error
	RolledBack []string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("config #%d could not be written (%d earlier file(s) removed): %v", e.Unit, len(e.RolledBack), e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
