package maeparser

import "fmt"

// wrapf prefixes err with the package tag and the given context, matching
// the way the parser's own errs types carry structured detail rather than
// a log line: the wrapped error is still recoverable with errors.As.
func wrapf(context string, err error) error {
	return fmt.Errorf("maeparser: %s: %w", context, err)
}
