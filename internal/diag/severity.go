package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for diagnostics that do not prevent code generation.
	SevWarning Severity = iota
	// SevError is for recoverable errors; code generation is suppressed.
	SevError
	// SevFatal is for unrecoverable errors; compilation stops immediately.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	case SevFatal:
		return "fatal"
	}
	return "unknown"
}
