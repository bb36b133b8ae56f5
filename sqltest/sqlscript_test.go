package sqltest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/sqlscript"
)

func TestEmbeddedScripts(t *testing.T) {
	// the delimiter redeclarations are not statements
	assert.Equal(t, 3, MSSQL.Len())
	assert.Equal(t, 3, PGSQL.Len())
}

func TestRunScripts(t *testing.T) {
	f := NewFixture(t)
	defer f.Teardown()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	require.NoError(t, sqlscript.Runner{Transaction: true}.Run(ctx, f.DB, f.Scripts()...))

	var name string
	require.NoError(t, f.DB.QueryRowContext(ctx, `select name from item where id = 1`).Scan(&name))
	assert.Equal(t, "first", name)
}

func TestRunRollsBackAndReportsLine(t *testing.T) {
	f := NewFixture(t)
	defer f.Teardown()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	broken, err := sqlscript.Load("broken.sql", []byte("create table rolled_back (id int);\nselect *\n  from does_not_exist;\n"), sqlscript.Options{})
	require.NoError(t, err)

	err = sqlscript.Runner{Transaction: true}.Run(ctx, f.DB, broken)
	require.Error(t, err)
	if f.IsSqlServer() {
		var userErr sqlscript.MSSQLUserError
		assert.ErrorAs(t, err, &userErr)
	} else {
		var userErr sqlscript.PGSQLUserError
		assert.ErrorAs(t, err, &userErr)
	}
	assert.Contains(t, err.Error(), "broken.sql:3")

	var count int
	require.NoError(t, f.DB.QueryRowContext(ctx,
		`select count(*) from information_schema.tables where table_name = 'rolled_back'`).Scan(&count))
	assert.Equal(t, 0, count)
}
