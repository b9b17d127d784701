package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for suggestions that never affect validity.
	SevInfo Severity = iota
	// SevWarning is for probable problems that do not block a script.
	SevWarning
	// SevError is for hard failures; any error makes a script invalid.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label returns the lowercase form used in CLI output.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
