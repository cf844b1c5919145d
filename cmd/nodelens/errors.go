package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	nlerrors "nodelens/internal/errors"
)

// toCLIError returns err as a coded error. Errors without a code, such as
// cobra's flag errors, are reported as invalid arguments.
func toCLIError(err error) *nlerrors.Error {
	var e *nlerrors.Error
	if errors.As(err, &e) {
		return e
	}
	if strings.Contains(err.Error(), "flag") || strings.Contains(err.Error(), "arg(s)") ||
		strings.HasPrefix(err.Error(), "unknown command") {
		return nlerrors.New(nlerrors.InvalidArgument, err.Error(), nil)
	}
	return nlerrors.New(nlerrors.InternalError, "unexpected error", err)
}

// printError writes err and its suggested fixes.
func printError(w io.Writer, err error) {
	e := toCLIError(err)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Error: %s\n", e.Error()))
	if len(e.SuggestedFixes) > 0 {
		b.WriteString("Suggested fixes:\n")
		for _, fix := range e.SuggestedFixes {
			b.WriteString(fmt.Sprintf("  - %s\n", fix.Description))
			if fix.Command != "" {
				b.WriteString(fmt.Sprintf("    $ %s\n", fix.Command))
			}
		}
	}
	_, _ = io.WriteString(w, b.String())
}
