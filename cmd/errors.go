package cmd

// UsageError reports a command line that does not have the expected shape:
// a wrong argument count, an unknown flag or an invalid flag value.
type UsageError struct {
	Err error // nil when only the argument count is wrong
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return "usage: " + e.Err.Error()
	}
	return "usage: " + usageLine
}

func (e *UsageError) Unwrap() error { return e.Err }

// ArgError reports a positional argument that is not a non-negative integer.
type ArgError struct {
	Name  string
	Value string
	Err   error
}

func (e *ArgError) Error() string {
	return "invalid " + e.Name + " number " + `"` + e.Value + `": ` + e.Err.Error()
}

func (e *ArgError) Unwrap() error { return e.Err }
