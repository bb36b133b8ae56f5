package sqlparser

import (
	"fmt"
	"strings"
)

// dedicated type for reference to file, in case we need to refactor this later..
type FileRef string

// Pos represents a position in a source file with line and column numbers.
// Line and column are 1-indexed for human-readable error messages.
type Pos struct {
	File      FileRef
	Line, Col int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

type StatementType int

const (
	SQLStatement StatementType = iota + 1

	// DelimiterStatement is a `delimiter <value>` directive; it only changes
	// the delimiter and is never executed
	DelimiterStatement
)

func (st StatementType) String() string {
	switch st {
	case SQLStatement:
		return "SQLStatement"
	case DelimiterStatement:
		return "DelimiterStatement"
	default:
		return fmt.Sprintf("StatementType(%d)", int(st))
	}
}

// Statement is a single executable unit cut out of a script.
type Statement struct {
	Type StatementType

	// Value is the statement text as it appeared in the script, with
	// comments and whitespace kept and the closing delimiter removed.
	Value string

	// Delimiter is the delimiter that was active when the statement
	// was closed
	Delimiter string

	// Start is the position of the first token of the statement,
	// which may be whitespace or a comment
	Start Pos
}

// Empty is true if the statement has no text except whitespace
func (s Statement) Empty() bool {
	return strings.TrimSpace(s.Value) == ""
}
