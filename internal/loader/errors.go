package loader

import "fmt"

// DataFormatError reports a table whose shape or cell contents cannot be used.
type DataFormatError struct {
	Path   string
	Line   int    // 0 when the problem is not tied to a row
	Column string // empty when the problem is not tied to a column
	Reason string
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("%s:%d: column %q: %s", e.Path, e.Line, e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %s", e.Path, e.Column, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
}

// DecodeError reports a file that is neither UTF-8 nor BOM-prefixed UTF-8.
type DecodeError struct {
	Path     string
	Primary  error
	Fallback error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot decode as utf-8 (%v) or utf-8 with BOM (%v)", e.Path, e.Primary, e.Fallback)
}

func (e *DecodeError) Unwrap() error {
	return e.Fallback
}
