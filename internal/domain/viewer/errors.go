package viewer

import "errors"

var errNoPages = errors.New("document has no pages")

// ErrPageOutOfRange signals a paint request for a page the document does not have.
var ErrPageOutOfRange = errors.New("page out of range")
