// Package engine implements the in-memory data-processing core: record
// normalization, aggregate metrics, filtering, and sorting over the
// vulnerability dataset.
package engine

import "fmt"

// FormatError reports raw input that cannot be resolved to a record
// array. It is fatal to the load operation; no partial dataset is
// produced.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unresolvable dataset shape: %s", e.Reason)
}

// IsFormatError reports whether err is a FormatError
func IsFormatError(err error) bool {
	_, ok := err.(*FormatError)
	return ok
}
