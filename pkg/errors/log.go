package errors

import (
	"fmt"
	"os"
)

// LogHandler is a Handler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables timestamped output.
	Verbose bool
}

// HandleError logs an Error to stderr.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[frameclock error] %s %s [%s]: %v\n",
			err.Timestamp.Format("15:04:05.000"), err.Op, err.Kind, err.Err)
	} else {
		fmt.Fprintf(os.Stderr, "[frameclock error] %s: %v\n", err.Op, err.Err)
	}
}
