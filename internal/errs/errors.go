package errs

import "errors"

// ErrUnavailable indicates the underlying ledger store could not be
// queried. Reports are never served partially; this propagates as a hard
// failure to the caller.
var ErrUnavailable = errors.New("unavailable")
