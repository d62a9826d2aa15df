package atlas

import "fmt"

// ArgumentError signals a caller mistake, as opposed to an ordinary "does not
// fit" outcome, which is always reported through PackResult.Valid instead of
// an error. It is returned when the sources slice is nil; source dimensions
// are not checked.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return "atlas: " + e.Message
}

// UnsupportedOptionError is returned by the Parse* helpers when a caller-
// supplied name does not name a known enum value. The teacher's ResolveAlgorithm
// instead returned a sentinel value (99) on an unknown name and let the caller
// discover the mistake later; here it is surfaced immediately.
type UnsupportedOptionError struct {
	Option string
	Value  string
}

func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("atlas: unsupported %s %q", e.Option, e.Value)
}
