package sqltest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
	"github.com/vippsas/sqlscript"
)

type StdoutLogger struct {
}

func (s StdoutLogger) Printf(format string, v ...interface{}) {
	fmt.Printf(format, v...)
}

func (s StdoutLogger) Println(v ...interface{}) {
	fmt.Println(v...)
}

var _ mssql.Logger = StdoutLogger{}

type Driver string

const (
	SQLServer  Driver = "sqlserver"
	PostgreSQL Driver = "pgx"
)

// Fixture is a throwaway database on the server given by SQLSERVER_DSN or
// PGSQL_DSN
type Fixture struct {
	DB     *sql.DB
	DBName string
	Driver Driver

	adminDB  *sql.DB
	quotedDB string
}

// NewFixture creates the database, or skips the test if no server is
// configured
func NewFixture(t testing.TB) *Fixture {
	var fixture Fixture

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	fixture.DBName = strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")

	var err error
	if dsn := os.Getenv("SQLSERVER_DSN"); dsn != "" {
		err = fixture.openSQLServer(ctx, dsn)
	} else if dsn := os.Getenv("PGSQL_DSN"); dsn != "" {
		err = fixture.openPostgres(ctx, dsn)
	} else {
		t.Skip("set SQLSERVER_DSN or PGSQL_DSN to run database tests")
	}
	if err != nil {
		fixture.Teardown()
		t.Fatal(err)
	}
	return &fixture
}

func (f *Fixture) openSQLServer(ctx context.Context, dsn string) error {
	f.Driver = SQLServer
	f.quotedDB = "[" + f.DBName + "]"
	if os.Getenv("SQLSCRIPT_DEBUG") != "" {
		mssql.SetLogger(StdoutLogger{})
		if strings.Contains(dsn, "?") {
			dsn = dsn + "&log=3"
		} else {
			dsn = dsn + "?log=3"
		}
	}

	var err error
	f.adminDB, err = sql.Open("sqlserver", dsn)
	if err != nil {
		return err
	}
	if _, err = f.adminDB.ExecContext(ctx, fmt.Sprintf(`create database %s`, f.quotedDB)); err != nil {
		return err
	}

	pdsn, err := msdsn.Parse(dsn)
	if err != nil {
		return err
	}
	pdsn.Database = f.DBName

	f.DB, err = sql.Open("sqlserver", pdsn.URL().String())
	return err
}

func (f *Fixture) openPostgres(ctx context.Context, dsn string) error {
	f.Driver = PostgreSQL
	f.quotedDB = `"` + f.DBName + `"`

	adminConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return err
	}
	f.adminDB = stdlib.OpenDB(*adminConfig)
	if _, err = f.adminDB.ExecContext(ctx, fmt.Sprintf(`create database %s`, f.quotedDB)); err != nil {
		return err
	}

	dbConfig := adminConfig.Copy()
	dbConfig.Database = f.DBName
	f.DB = stdlib.OpenDB(*dbConfig)
	return nil
}

func (f *Fixture) IsSqlServer() bool {
	return f.Driver == SQLServer
}

func (f *Fixture) IsPostgresql() bool {
	return f.Driver == PostgreSQL
}

// Scripts are the embedded scripts for the database server in use
func (f *Fixture) Scripts() sqlscript.Scripts {
	if f.IsPostgresql() {
		return PGSQL
	}
	return MSSQL
}

func (f *Fixture) Teardown() {
	if f.adminDB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if f.DB != nil {
		_ = f.DB.Close()
		f.DB = nil
	}
	_, _ = f.adminDB.ExecContext(ctx, fmt.Sprintf(`drop database %s`, f.quotedDB))
	_ = f.adminDB.Close()
	f.adminDB = nil
}
