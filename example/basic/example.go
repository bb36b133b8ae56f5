package example

import (
	"embed"

	"github.com/vippsas/sqlscript"
	"github.com/vippsas/sqlscript/sqlparser"
)

//go:embed *.sql
//go:embed */*.sql
var sqlfs embed.FS

// SQL are the migrations of the example service, in the order they are run
var SQL = sqlscript.MustInclude(sqlscript.Options{Rules: sqlparser.MySQLRules()}, sqlfs)
