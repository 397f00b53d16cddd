package navigation

import "errors"

// Route table construction errors.
var (
	ErrInvalidHistory = errors.New("invalid history strategy")
	ErrInvalidPath    = errors.New("invalid route path")
	ErrDuplicatePath  = errors.New("duplicate route path")
	ErrInvalidTarget  = errors.New("route must declare exactly one of redirect or view")
	ErrInvalidParam   = errors.New("invalid dynamic segment")
	ErrRedirectLoop   = errors.New("redirect loop")
)

// Resolution errors.
var (
	ErrNotFound = errors.New("no route matches location")
)

// Location canonicalization errors.
var (
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)
