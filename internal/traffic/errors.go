package traffic

import "errors"

// Request-fatal error classes. Cache failures are deliberately absent:
// they are recovered inside the service and never reach the caller.
var (
	ErrBadRequest   = errors.New("year and week are required parameters")
	ErrSiteNotFound = errors.New("site not found")
	ErrForbidden    = errors.New("access denied")
	ErrUpstream     = errors.New("query engine failure")
)
