// Statement assembly: groups the token stream from the Scanner into
// statements at delimiter boundaries. There is no SQL grammar here; the
// text between two delimiters is passed on verbatim.
package sqlparser

import (
	"strings"
)

// LineBreak is written to statement text for every EndOfLineToken, so
// \r\n in the input comes out as \n
const LineBreak = "\n"

// Parse scans input and returns the executable statements in source order.
// Delimiter redeclarations and empty statements are left out.
func Parse(file FileRef, input string, rules Rules) ([]Statement, error) {
	tokens, err := NewScanner(file, input, rules).Scan()
	if err != nil {
		return nil, err
	}
	statements := Assemble(tokens)
	for i := range statements {
		statements[i].Start.File = file
	}
	return Executable(statements), nil
}

// Helper function to parse a script without a file reference
func ParseString(input string, rules Rules) ([]Statement, error) {
	return Parse("", input, rules)
}

// Executable filters out statements that should not be sent to a database:
// those with only whitespace and the delimiter redeclarations.
func Executable(statements []Statement) []Statement {
	result := make([]Statement, 0, len(statements))
	for _, stmt := range statements {
		if stmt.Type == DelimiterStatement || stmt.Empty() {
			continue
		}
		result = append(result, stmt)
	}
	return result
}

// Assemble groups tokens into statements. Every token belongs to exactly
// one statement; nothing is filtered. The delimiter is tracked from the
// DelimiterDeclareToken/DelimiterToken pairs in the stream, starting
// from DefaultDelimiter.
func Assemble(tokens []Token) []Statement {
	p := assembler{tokens: tokens, delimiter: DefaultDelimiter}
	var result []Statement
	for !p.atEnd() {
		p.start = p.current
		result = append(result, p.parseStatement())
	}
	return result
}

type assembler struct {
	tokens    []Token
	delimiter string

	start   int // index of first token in the current statement
	current int // index of next token to consume
}

func (p *assembler) atEnd() bool {
	return p.current >= len(p.tokens)
}

func (p *assembler) advance() Token {
	p.current++
	return p.tokens[p.current-1]
}

func (p *assembler) parseStatement() Statement {
	result := Statement{
		Type:  SQLStatement,
		Start: p.tokens[p.start].Pos(""),
	}

	closing := -1
	declaring := false
loop:
	for !p.atEnd() {
		token := p.advance()
		switch token.Type {
		case DelimiterDeclareToken:
			result.Type = DelimiterStatement
			declaring = true
		case DelimiterToken:
			if declaring {
				p.delimiter = token.Value
			}
			closing = p.current - 1
			// a line break straight after the delimiter belongs to this statement
			if !p.atEnd() && p.tokens[p.current].Type == EndOfLineToken {
				p.advance()
			}
			break loop
		}
	}

	var buf strings.Builder
	for i, token := range p.tokens[p.start:p.current] {
		switch {
		case token.Type == EndOfLineToken:
			buf.WriteString(LineBreak)
		case p.start+i == closing:
			// the delimiter is metadata, not statement text
		default:
			buf.WriteString(token.Value)
		}
	}
	result.Value = buf.String()
	result.Delimiter = p.delimiter
	return result
}
