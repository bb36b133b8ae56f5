package sqlparser

import "fmt"

type ErrorKind int

const (
	UnterminatedQuoteError ErrorKind = iota + 1
	UnterminatedCommentError
	MissingDelimiterError
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedQuoteError:
		return "UnterminatedQuoteError"
	case UnterminatedCommentError:
		return "UnterminatedCommentError"
	case MissingDelimiterError:
		return "MissingDelimiterError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned when a script cannot be scanned. Scanning stops at the
// first error; there are no partial results.
type Error struct {
	Pos     Pos
	Kind    ErrorKind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s %s", e.Pos, e.Message)
}

func (e Error) WithoutPos() Error {
	return Error{Kind: e.Kind, Message: e.Message}
}
