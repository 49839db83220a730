package zmk

// ParseError is returned for every fatal parsing failure. Its message is
// prefixed with "Failed to parse keymap file: " and it unwraps to the cause.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "Failed to parse keymap file: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
