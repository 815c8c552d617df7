package cmd

// Exit codes form the host binary's contract with its caller: 0
// success, 1 an uncaught host (NaabError) exception, 2 a parse/check
// failure, 3 an internal-invariant violation (naaberr.TypeInternalError).
const (
	exitOK                = 0
	exitUncaughtException = 1
	exitParseFailure      = 2
	exitInternalViolation = 3
)

// exitCodeError lets a RunE handler report a failure that has already
// printed its own diagnostic (a rendered NaabError report, a parser
// error list) without cobra re-printing a generic "Error: ..." line,
// while still carrying the specific exit code main() should use.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string { return "" }

// ExitCode extracts the exit code from err, defaulting to 1 for any
// error a RunE handler returned the ordinary way (bad flags, file not
// found, config load failure).
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if ec, ok := err.(*exitCodeError); ok {
		return ec.code
	}
	return exitUncaughtException
}
