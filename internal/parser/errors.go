package parser

// ErrorKind classifies parser errors.
type ErrorKind int

// Parser error kinds.
const (
	Expected            ErrorKind = iota // a required token or expression was missing
	UnexpectedKeyword                    // a reserved word used where a name is required
	InvalidAssignTarget                  // left side of an assignment is not a Name or Subscript
	Unimplemented                        // a construct the grammar accepts but the language omits
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case Expected:
		return "Expected"
	case UnexpectedKeyword:
		return "UnexpectedKeyword"
	case InvalidAssignTarget:
		return "InvalidAssignTarget"
	case Unimplemented:
		return "Unimplemented"
	default:
		return "Unknown"
	}
}

// Error is a parse error carrying the index of the offending token.
// The driver maps the token's start offset to a line/column pair.
type Error struct {
	Kind       ErrorKind
	Message    string
	TokenIndex int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
