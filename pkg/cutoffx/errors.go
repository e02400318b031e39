package cutoffx

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a readable workbook.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrUnparseableSource indicates year or round could not be read from a path.
var ErrUnparseableSource = errors.New("cannot parse category/year/round from path")

// ErrDataRootMissing indicates the cutoff data directory does not exist.
var ErrDataRootMissing = errors.New("cutoff data directory missing")

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "read", "extract", "normalize"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
