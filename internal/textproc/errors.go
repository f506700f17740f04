package textproc

import "errors"

// Failure taxonomy shared by every parser. Callers classify with errors.Is.
var (
	// ErrMissingSection means an expected text block was empty or absent.
	ErrMissingSection = errors.New("missing section")

	// ErrMalformedGrouping means a line count is not divisible by the expected group size.
	ErrMalformedGrouping = errors.New("malformed grouping")

	// ErrNumericFormat means a field expected to be numeric is not.
	ErrNumericFormat = errors.New("numeric format")

	// ErrPatternMismatch means a regex-based field extraction found no match.
	ErrPatternMismatch = errors.New("pattern mismatch")

	// ErrLengthMismatch means two collections zipped by position have different lengths.
	ErrLengthMismatch = errors.New("length mismatch")
)

// Kind returns the short machine name of the taxonomy entry wrapped by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingSection):
		return "missing_section"
	case errors.Is(err, ErrMalformedGrouping):
		return "malformed_grouping"
	case errors.Is(err, ErrNumericFormat):
		return "numeric_format"
	case errors.Is(err, ErrPatternMismatch):
		return "pattern_mismatch"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	default:
		return "internal"
	}
}
