package sqlparser

type TokenType int

const (
	WhitespaceToken TokenType = iota + 1

	// EndOfLineToken is emitted for each \n or \r\n; it carries no text
	EndOfLineToken

	TextToken

	SingleQuotedToken
	DoubleQuotedToken
	BacktickQuotedToken

	// CommentToken covers both single line (--, #) and /* multiline */
	// comments. The line break ending a single line comment is not part
	// of the token
	CommentToken

	// DelimiterDeclareToken is the `delimiter` keyword. The scanner always
	// follows it by the DelimiterToken holding the new delimiter
	DelimiterDeclareToken
	DelimiterToken

	EOFToken
)

func (tt TokenType) GoString() string {
	return tokenToDescription[tt]
}

func (tt TokenType) String() string {
	return tokenToDescription[tt]
}

func init() {
	// make sure we panic if a description isn't declared
	for tt := TokenType(1); tt <= EOFToken; tt++ {
		if tokenToDescription[tt] == "" {
			panic("you have not updated tokenToDescription")
		}
	}
}

var tokenToDescription = map[TokenType]string{
	WhitespaceToken: "WhitespaceToken",
	EndOfLineToken:  "EndOfLineToken",
	TextToken:       "TextToken",

	SingleQuotedToken:   "SingleQuotedToken",
	DoubleQuotedToken:   "DoubleQuotedToken",
	BacktickQuotedToken: "BacktickQuotedToken",

	CommentToken: "CommentToken",

	DelimiterDeclareToken: "DelimiterDeclareToken",
	DelimiterToken:        "DelimiterToken",

	EOFToken: "EOFToken",
}

// Token is a classified slice of the script. Value is a substring of the
// input, except for EndOfLineToken and EOFToken which have no text, and
// the DelimiterToken following a DelimiterDeclareToken which is trimmed.
type Token struct {
	Type   TokenType
	Value  string
	Line   int // 1-indexed line where the token starts
	Col    int // 1-indexed byte column where the token starts
	Offset int // byte offset in the input where the token starts
}

func (t Token) Pos(file FileRef) Pos {
	return Pos{File: file, Line: t.Line, Col: t.Col}
}
