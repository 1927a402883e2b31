package guard

import "fmt"

// ScanError reports a stylesheet that could not be read. The scan did not complete,
// so the result is neither a pass nor a list of violations.
type ScanError struct {
	File string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.File, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
