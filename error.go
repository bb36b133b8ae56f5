package sqlscript

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/vippsas/sqlscript/sqlparser"
)

// MSSQLUserError is an error reported by SQL Server while running a batch,
// with line numbers pointing back into the script file
type MSSQLUserError struct {
	Wrapped mssql.Error
	Batch   Batch
}

func (s MSSQLUserError) Error() string {
	var buf bytes.Buffer

	if _, fmterr := fmt.Fprintf(&buf, "\n"); fmterr != nil {
		panic(fmterr)
	}
	all := s.Wrapped.All
	if len(all) == 0 {
		all = []mssql.Error{s.Wrapped}
	}
	for _, item := range all {
		if _, fmterr := fmt.Fprintf(&buf, "\n%s:%d (%s): %s",
			s.Batch.StartPos.File,
			s.Batch.LineNumberInInput(int(item.LineNo)),
			item.ProcName,
			item.Message); fmterr != nil {
			panic(fmterr)
		}
	}
	return buf.String()
}

func (s MSSQLUserError) Unwrap() error {
	return s.Wrapped
}

// PGSQLUserError is an error reported by PostgreSQL while running a batch.
// Postgres reports a character position rather than a line, which is
// turned into a line in the script file.
type PGSQLUserError struct {
	Wrapped *pgconn.PgError
	Batch   Batch
}

// Line is the line in the script file the error was reported at
func (s PGSQLUserError) Line() int {
	outputline := 1
	if s.Wrapped.Position > 0 {
		runes := []rune(s.Batch.Lines)
		end := int(s.Wrapped.Position) - 1
		if end > len(runes) {
			end = len(runes)
		}
		outputline += strings.Count(string(runes[:end]), "\n")
	}
	return s.Batch.LineNumberInInput(outputline)
}

func (s PGSQLUserError) Error() string {
	return fmt.Sprintf("\n\n%s:%d: %s: %s (SQLSTATE %s)",
		s.Batch.StartPos.File,
		s.Line(),
		s.Wrapped.Severity,
		s.Wrapped.Message,
		s.Wrapped.Code)
}

func (s PGSQLUserError) Unwrap() error {
	return s.Wrapped
}

// userError wraps an error from executing a batch, so that it points to
// the script file and line
func userError(err error, b Batch) error {
	var mssqlErr mssql.Error
	if errors.As(err, &mssqlErr) {
		return MSSQLUserError{Wrapped: mssqlErr, Batch: b}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return PGSQLUserError{Wrapped: pgErr, Batch: b}
	}
	return fmt.Errorf("%s: %w", b.StartPos, err)
}

type ScriptParseErrors struct {
	Errors []sqlparser.Error
}

func (e ScriptParseErrors) Error() string {
	var msg strings.Builder
	msg.WriteString("sql script syntax error:\n\n")
	for _, e := range e.Errors {
		msg.WriteString(fmt.Sprintf("%s:%d:%d: %s\n", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Message))
	}
	return msg.String()
}
