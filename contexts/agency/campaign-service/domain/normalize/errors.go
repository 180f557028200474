package normalize

// ValidationError reports the first input violation encountered. Parsing is
// fail-fast: one error at a time, carrying the offending field path and a
// human-readable message suitable for the wire.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(path string, message string) *ValidationError {
	return &ValidationError{Path: path, Message: message}
}
