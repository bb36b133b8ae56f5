package sqlscript

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/sqlscript/sqlparser"
)

func TestMSSQLUserError(t *testing.T) {
	b := Batch{
		StartPos: sqlparser.Pos{File: "a.sql", Line: 10, Col: 1},
		Lines:    "select\n  x\nfrom t",
	}
	t.Run("all messages", func(t *testing.T) {
		first := mssql.Error{Message: "Invalid column name 'x'.", LineNo: 2, ProcName: ""}
		second := mssql.Error{Message: "Statement could not be prepared.", LineNo: 1, ProcName: "p"}
		err := MSSQLUserError{
			Wrapped: mssql.Error{Message: first.Message, LineNo: 2, All: []mssql.Error{first, second}},
			Batch:   b,
		}
		assert.Equal(t, "\n\na.sql:11 (): Invalid column name 'x'.\na.sql:10 (p): Statement could not be prepared.", err.Error())
	})
	t.Run("single message", func(t *testing.T) {
		err := MSSQLUserError{Wrapped: mssql.Error{Message: "boom", LineNo: 3}, Batch: b}
		assert.Equal(t, "\n\na.sql:12 (): boom", err.Error())
	})
}

func TestPGSQLUserError(t *testing.T) {
	b := Batch{
		StartPos: sqlparser.Pos{File: "a.sql", Line: 4, Col: 1},
		Lines:    "select\n  1,\n  nope\nfrom t",
	}
	err := PGSQLUserError{
		Wrapped: &pgconn.PgError{
			Severity: "ERROR",
			Code:     "42703",
			Message:  `column "nope" does not exist`,
			Position: 15,
		},
		Batch: b,
	}
	assert.Equal(t, 6, err.Line())
	assert.Equal(t, "\n\na.sql:6: ERROR: column \"nope\" does not exist (SQLSTATE 42703)", err.Error())

	t.Run("no position", func(t *testing.T) {
		err := PGSQLUserError{Wrapped: &pgconn.PgError{Message: "x"}, Batch: b}
		assert.Equal(t, 4, err.Line())
	})
	t.Run("position past the end", func(t *testing.T) {
		err := PGSQLUserError{Wrapped: &pgconn.PgError{Message: "x", Position: 1000}, Batch: b}
		assert.Equal(t, 7, err.Line())
	})
}

func TestUserError(t *testing.T) {
	b := Batch{StartPos: sqlparser.Pos{File: "a.sql", Line: 4, Col: 3}}

	t.Run("mssql", func(t *testing.T) {
		err := userError(fmt.Errorf("exec: %w", mssql.Error{Message: "boom", LineNo: 1}), b)
		var target MSSQLUserError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "boom", target.Wrapped.Message)
		assert.Equal(t, b, target.Batch)
	})
	t.Run("pgsql", func(t *testing.T) {
		pgErr := &pgconn.PgError{Message: "boom"}
		err := userError(pgErr, b)
		var target PGSQLUserError
		require.True(t, errors.As(err, &target))
		assert.Same(t, pgErr, target.Wrapped)
	})
	t.Run("other", func(t *testing.T) {
		cause := errors.New("boom")
		err := userError(cause, b)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "a.sql:4:3: boom", err.Error())
	})
}
