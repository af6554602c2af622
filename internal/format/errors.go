package format

import (
	"errors"
	"fmt"
)

// ErrInvalidMagic is returned when a buffer claiming to be an Across Lite
// file lacks the fixed signature.
var ErrInvalidMagic = errors.New("invalid magic string: expected ACROSS&DOWN")

// FileTooShortError reports a buffer that cannot hold the structures the
// header declares. Expected and Actual are byte counts.
type FileTooShortError struct {
	Expected int
	Actual   int
}

func (e *FileTooShortError) Error() string {
	return fmt.Sprintf("file too short: expected at least %d bytes, got %d", e.Expected, e.Actual)
}

// InvalidDimensionsError reports a zero width or height.
type InvalidDimensionsError struct {
	Width  int
	Height int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid grid dimensions: %dx%d", e.Width, e.Height)
}

// InvalidDataError reports content that is structurally readable but
// semantically wrong (wrong puzzle kind, mismatched row counts, clue with no
// grid position). The message carries the offending detail.
type InvalidDataError struct {
	Reason string
}

func (e *InvalidDataError) Error() string {
	return "invalid data: " + e.Reason
}

// UnsupportedFormatError carries the format hint verbatim so callers can
// echo it to the user.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported format: " + e.Format
}

// ArchiveError reports a failure in the ZIP layer of a jpz file, distinct
// from XML-layer failures.
type ArchiveError struct {
	Reason string
	Err    error
}

func (e *ArchiveError) Error() string {
	if e.Err != nil {
		return "archive error: " + e.Reason + ": " + e.Err.Error()
	}
	return "archive error: " + e.Reason
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// XMLError reports a failure while reading the XML event stream.
type XMLError struct {
	Reason string
	Err    error
}

func (e *XMLError) Error() string {
	if e.Err != nil {
		return "xml error: " + e.Reason + ": " + e.Err.Error()
	}
	return "xml error: " + e.Reason
}

func (e *XMLError) Unwrap() error { return e.Err }
