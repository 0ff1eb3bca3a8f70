package codeerrors

// codes
const (
	CodeSyntax    = "syntax_error"
	CodeConfig    = "config_error"
	CodeFormat    = "format_error"
	CodeIO        = "io_error"
	CodeNotFound  = "not_found"
	CodeConflict  = "conflict"
	CodeOutOfBand = "out_of_range"
)

// predefined errors, one per error kind. Callers derive concrete errors from
// these with WithMessage/WithReason/Wrap.
var (
	// ErrSyntax reports malformed query text or an empty analyzed result. Non-fatal.
	ErrSyntax = Error{Code: CodeSyntax}
	// ErrConfig reports an unknown analyzer name or an invalid field list. Non-fatal.
	ErrConfig = Error{Code: CodeConfig}
	// ErrFormat reports a chunk magic/version/crc mismatch. The chunk is quarantined.
	ErrFormat = Error{Code: CodeFormat}
	// ErrIO reports a filesystem failure. Retried by the caller, preserves index state.
	ErrIO = Error{Code: CodeIO}
	// ErrNotFound reports a missing term, field, or chunk.
	ErrNotFound = Error{Code: CodeNotFound}
	// ErrConflict reports a re-registration with an incompatible definition.
	ErrConflict = Error{Code: CodeConflict}
	// ErrOutOfRange reports an id-space exhaustion.
	ErrOutOfRange = Error{Code: CodeOutOfBand}
)
