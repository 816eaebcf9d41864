package markd

import "errors"

// Sentinel errors returned by Converter. Callers classify failures with errors.Is.
var (
	ErrNotFound    = errors.New("document not found")
	ErrUnsupported = errors.New("unsupported document")
	ErrIO          = errors.New("document could not be read")
	ErrEncoding    = errors.New("document is not valid text")
)
