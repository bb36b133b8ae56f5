package sqltest

import (
	"embed"

	"github.com/vippsas/sqlscript"
)

//go:embed mssql/*.sql
var mssqlfs embed.FS

//go:embed pgsql/*.sql
var pgsqlfs embed.FS

var variables = map[string]string{"ItemName": "first"}

var MSSQL = sqlscript.MustInclude(
	sqlscript.Options{Variables: variables},
	mssqlfs,
)

var PGSQL = sqlscript.MustInclude(
	sqlscript.Options{Variables: variables},
	pgsqlfs,
)
