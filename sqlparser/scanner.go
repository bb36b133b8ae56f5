package sqlparser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
	"github.com/vippsas/sqlscript/sqlparser/internal/utils"
)

const (
	DefaultDelimiter = ";"

	// delimiterKeyword, in any case, redefines the delimiter to the rest
	// of the line it is on
	delimiterKeyword = "delimiter"
)

// Scanner breaks a script into tokens. Unlike a parser-driven cursor, it
// does a single pass over the whole input and returns the full token slice,
// because the script may redefine its own delimiter and every later token
// depends on that.
//
// A Scanner is not safe for concurrent use; scan different scripts with
// different Scanners.
type Scanner struct {
	input string
	file  FileRef
	rules Rules

	delimiter string

	startIndex int // byte index where the current token starts
	curIndex   int // current byte position in input

	startLine        int // line number (0-indexed) where current token starts
	stopLine         int // line number (0-indexed) at curIndex
	indexAtStartLine int // byte index at the start of startLine (after newline)
	indexAtStopLine  int // byte index at the start of stopLine (after newline)

	tokens []Token
}

func NewScanner(file FileRef, input string, rules Rules) *Scanner {
	return &Scanner{input: input, file: file, rules: rules, delimiter: DefaultDelimiter}
}

// Scan tokenizes input using the given rules.
func Scan(input string, rules Rules) ([]Token, error) {
	return NewScanner("", input, rules).Scan()
}

// Delimiter returns the active delimiter; after Scan returns it is the
// delimiter in effect at the end of the script.
func (s *Scanner) Delimiter() string {
	return s.delimiter
}

// Scan tokenizes the whole input. The last token is always an EOFToken.
// On error no tokens are returned; the error is always an Error.
func (s *Scanner) Scan() ([]Token, error) {
	s.delimiter = DefaultDelimiter
	s.curIndex = 0
	s.stopLine = 0
	s.indexAtStopLine = 0
	s.tokens = make([]Token, 0, len(s.input)/4+1)

	for s.curIndex < len(s.input) {
		s.startToken()
		if err := s.scanToken(); err != nil {
			s.tokens = nil
			return nil, err
		}
	}
	s.startToken()
	s.emit(EOFToken, "")

	result := s.tokens
	s.tokens = nil
	return result, nil
}

// Start returns the position where the current token begins.
// Line and column are 1-indexed.
func (s *Scanner) Start() Pos {
	return Pos{
		Line: s.startLine + 1,
		Col:  s.startIndex - s.indexAtStartLine + 1,
		File: s.file,
	}
}

func (s *Scanner) startToken() {
	s.startIndex = s.curIndex
	s.startLine = s.stopLine
	s.indexAtStartLine = s.indexAtStopLine
}

// runeAt decodes the rune at byte index i; past the end of input it
// returns utf8.RuneError with width 0.
func (s *Scanner) runeAt(i int) (rune, int) {
	if i < 0 || i >= len(s.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.input[i:])
}

// bumpLine increments the line counter and records the byte position
// after the newline character. The offset parameter is the position
// of the newline relative to curIndex.
func (s *Scanner) bumpLine(offset int) {
	s.stopLine++
	s.indexAtStopLine = s.curIndex + offset + 1
}

func (s *Scanner) atDelimiter() bool {
	return strings.HasPrefix(s.input[s.curIndex:], s.delimiter)
}

func (s *Scanner) scanToken() error {
	// delimiters take precedence over everything else; quotes and comments
	// are scanned as a whole below, so this is never reached inside them
	if s.atDelimiter() {
		s.curIndex += len(s.delimiter)
		return s.addToken(DelimiterToken)
	}

	r, w := s.runeAt(s.curIndex)
	r2, w2 := s.runeAt(s.curIndex + w)

	switch {
	case r == ' ' || r == '\t':
		s.skipLineSpace()
		return s.addToken(WhitespaceToken)
	case r == '\n':
		s.curIndex += w
		return s.endOfLine()
	case r == '\r' && r2 == '\n':
		s.curIndex += w + w2
		return s.endOfLine()
	case r == '\'':
		s.curIndex += w
		return s.scanQuoted('\'', SingleQuotedToken)
	case r == '"':
		s.curIndex += w
		return s.scanQuoted('"', DoubleQuotedToken)
	case r == '`' && s.rules.BacktickAsQuote:
		s.curIndex += w
		return s.scanQuoted('`', BacktickQuotedToken)
	case r == '#' && s.rules.HashAsComment:
		s.curIndex += w
		return s.scanSinglelineComment()
	case r == '-' && r2 == '-':
		s.curIndex += w + w2
		return s.scanSinglelineComment()
	case r == '/' && r2 == '*':
		s.curIndex += w + w2
		return s.scanMultilineComment()
	case isWordRune(r):
		s.curIndex += w
		s.scanWord()
		return s.addToken(TextToken)
	}

	s.curIndex += w
	return s.addToken(TextToken)
}

func isWordRune(r rune) bool {
	return xid.Continue(r)
}

// isLineSpace is true for whitespace that does not end a line
func (s *Scanner) isLineSpace(i int) bool {
	r, w := s.runeAt(i)
	if w == 0 || r == '\n' || !unicode.IsSpace(r) {
		return false
	}
	if r == '\r' {
		r2, _ := s.runeAt(i + w)
		return r2 != '\n'
	}
	return true
}

func (s *Scanner) skipLineSpace() {
	for s.isLineSpace(s.curIndex) {
		_, w := s.runeAt(s.curIndex)
		s.curIndex += w
	}
}

// lineEnd returns the byte index where the line containing curIndex ends,
// not including the \n or \r\n
func (s *Scanner) lineEnd() int {
	end := strings.IndexByte(s.input[s.curIndex:], '\n')
	if end == -1 {
		return len(s.input)
	}
	end += s.curIndex
	if end > s.curIndex && s.input[end-1] == '\r' {
		end--
	}
	return end
}

func (s *Scanner) endOfLine() error {
	s.stopLine++
	s.indexAtStopLine = s.curIndex
	s.emit(EndOfLineToken, "")
	return nil
}

// scanWord assumes the first character of a word has been consumed. A
// delimiter that itself starts with a word character ends the word, so
// that e.g. `select 1GO` is split before GO.
func (s *Scanner) scanWord() {
	first, _ := utf8.DecodeRuneInString(s.delimiter)
	wordDelimiter := isWordRune(first)
	for {
		r, w := s.runeAt(s.curIndex)
		if w == 0 || !isWordRune(r) {
			return
		}
		if wordDelimiter && s.atDelimiter() {
			return
		}
		s.curIndex += w
	}
}

// scanQuoted assumes the opening quote has been consumed and scans until the
// closing one. A doubled quote is an escaped quote and does not terminate.
func (s *Scanner) scanQuoted(endmarker rune, tokenType TokenType) error {
	skipnext := false
	for i, r := range s.input[s.curIndex:] {
		if skipnext {
			skipnext = false
			continue
		}
		if r == '\n' {
			s.bumpLine(i)
		}
		if r == endmarker {
			r2, _ := s.runeAt(s.curIndex + i + 1) // RuneError at eof
			if r2 == endmarker {
				skipnext = true
			} else {
				s.curIndex += i + 1
				return s.addToken(tokenType)
			}
		}
	}
	s.curIndex = len(s.input)

	var what string
	switch tokenType {
	case SingleQuotedToken:
		what = "single quoted"
	case DoubleQuotedToken:
		what = "double quoted"
	default:
		what = "backtick quoted"
	}
	return s.newError(UnterminatedQuoteError, "unterminated "+what+" value")
}

// scanSinglelineComment assumes one has advanced over -- or #
func (s *Scanner) scanSinglelineComment() error {
	// the line break is not part of the comment, it becomes an EndOfLineToken
	s.curIndex = s.lineEnd()
	return s.addToken(CommentToken)
}

// scanMultilineComment assumes one has advanced over '/*'
func (s *Scanner) scanMultilineComment() error {
	prevWasStar := false
	for i, r := range s.input[s.curIndex:] {
		if prevWasStar && r == '/' {
			s.curIndex += i + 1
			return s.addToken(CommentToken)
		}
		prevWasStar = r == '*'
		if r == '\n' {
			s.bumpLine(i)
		}
	}
	s.curIndex = len(s.input)
	return s.newError(UnterminatedCommentError, "unterminated comment")
}

// addToken completes the token between startIndex and curIndex. Every
// token passes through here, so this is where the delimiter keyword is
// recognized regardless of how the token was scanned.
func (s *Scanner) addToken(tokenType TokenType) error {
	value := s.input[s.startIndex:s.curIndex]
	if strings.EqualFold(value, delimiterKeyword) {
		return s.scanDelimiterDeclaration()
	}
	s.emit(tokenType, value)
	return nil
}

// scanDelimiterDeclaration is called with the delimiter keyword as the
// current token. The rest of the line, trimmed, is the new delimiter.
func (s *Scanner) scanDelimiterDeclaration() error {
	s.emit(DelimiterDeclareToken, s.input[s.startIndex:s.curIndex])
	keywordPos := s.Start()

	s.startToken()
	s.skipLineSpace()
	if s.curIndex > s.startIndex {
		s.emit(WhitespaceToken, s.input[s.startIndex:s.curIndex])
	}

	s.startToken()
	s.curIndex = s.lineEnd()
	value := strings.TrimSpace(s.input[s.startIndex:s.curIndex])
	if value == "" {
		return Error{
			Pos:     keywordPos,
			Kind:    MissingDelimiterError,
			Message: "delimiter keyword used but no delimiter provided",
		}
	}
	s.emit(DelimiterToken, value)

	utils.DPrint("delimiter changed from %q to %q on line %d\n", s.delimiter, value, s.startLine+1)
	s.delimiter = value
	return nil
}

func (s *Scanner) emit(tokenType TokenType, value string) {
	utils.DPrint("%s %q at %d:%d\n", tokenType, value, s.startLine+1, s.startIndex-s.indexAtStartLine+1)
	s.tokens = append(s.tokens, Token{
		Type:   tokenType,
		Value:  value,
		Line:   s.startLine + 1,
		Col:    s.startIndex - s.indexAtStartLine + 1,
		Offset: s.startIndex,
	})
}

func (s *Scanner) newError(kind ErrorKind, msg string) Error {
	return Error{Pos: s.Start(), Kind: kind, Message: msg}
}
