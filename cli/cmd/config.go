package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/azuread"
	"github.com/microsoft/go-mssqldb/msdsn"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlscript/sqlparser"
	"golang.org/x/net/proxy"
	"gopkg.in/yaml.v3"
)

const configFile = "sqlscript.yaml"

type DatabaseConfig struct {
	Connection string `yaml:"connection"`

	// Dialect overrides the top level dialect for scripts run against
	// this database
	Dialect string `yaml:"dialect"`
}

// socksDialer returns the SOCKS5 dialer configured through SQL_SOCKS,
// or nil if none is configured
func socksDialer() (proxy.ContextDialer, error) {
	socksProxyAddress := os.Getenv("SQL_SOCKS")
	if socksProxyAddress == "" {
		return nil, nil
	}
	dialer, err := proxy.SOCKS5("tcp", socksProxyAddress, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Could not connect with SOCKS5 to %s", socksProxyAddress))
	}
	return dialer.(proxy.ContextDialer), nil
}

func OpenSocks5Sql(dsn string) (*sql.DB, error) {
	var err error
	var connector *mssql.Connector

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return openSocks5Pgsql(dsn)
	} else if strings.HasPrefix(dsn, "azuresql://") {
		connector, err = azuread.NewConnector(dsn)
		if err != nil {
			return nil, err
		}
	} else if strings.HasPrefix(dsn, "sqlserver://") {
		connector, err = mssql.NewConnector(dsn)
		if err != nil {
			return nil, err
		}
	} else {
		return nil, errors.New("expected URI-style dsn; sqlserver:// for password login, azuresql:// for AD login or postgres://")
	}

	dialer, err := socksDialer()
	if err != nil {
		return nil, err
	}
	if dialer != nil {
		connector.Dialer = dialer
	}

	return sql.OpenDB(connector), nil
}

func openSocks5Pgsql(dsn string) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "invalid postgres dsn")
	}
	dialer, err := socksDialer()
	if err != nil {
		return nil, err
	}
	if dialer != nil {
		connConfig.DialFunc = dialer.DialContext
	}
	return stdlib.OpenDB(*connConfig), nil
}

func (dbcfg DatabaseConfig) Open(ctx context.Context, logger logrus.FieldLogger) (*sql.DB, error) {
	if strings.HasPrefix(dbcfg.Connection, "sqlserver://") {
		if pdsn, err := msdsn.Parse(dbcfg.Connection); err == nil {
			logger = logger.WithFields(logrus.Fields{"host": pdsn.Host, "database": pdsn.Database})
		}
	}
	dbc, err := OpenSocks5Sql(dbcfg.Connection)
	if err != nil {
		return nil, err
	}
	if err = dbc.PingContext(ctx); err != nil {
		_ = dbc.Close()
		return nil, errors.Wrap(err, "could not connect to database")
	}
	logger.Debug("connected")
	return dbc, nil
}

type Config struct {
	Dialect string `yaml:"dialect"`

	// Rules can be given instead of a dialect name
	Rules *sqlparser.Rules `yaml:"rules"`

	Databases map[string]DatabaseConfig `yaml:"databases"`
	Variables map[string]string         `yaml:"variables"`
}

// RulesFor picks the dialect for running scripts against dbname; pass ""
// when no database is involved. The --dialect flag wins over the config.
func (cfg Config) RulesFor(dbname string) (sqlparser.Rules, error) {
	if dialect != "" {
		return sqlparser.RulesByName(dialect)
	}
	if dbcfg, ok := cfg.Databases[dbname]; ok && dbcfg.Dialect != "" {
		return sqlparser.RulesByName(dbcfg.Dialect)
	}
	if cfg.Rules != nil {
		return *cfg.Rules, nil
	}
	return sqlparser.RulesByName(cfg.Dialect)
}

func LoadConfig() (Config, error) {
	var result Config

	configFilename := path.Join(directory, configFile)
	if _, err := os.Stat(configFilename); os.IsNotExist(err) {
		return Config{}, errors.New("No " + configFile + " found in current directory")
	}

	yamlFile, err := os.ReadFile(configFilename)
	if err != nil {
		return Config{}, err
	}
	err = yaml.Unmarshal(yamlFile, &result)
	if err != nil {
		return Config{}, errors.Wrap(err, configFilename)
	}
	return result, nil
}

// loadConfigIfExists is for commands that work without a config file
func loadConfigIfExists() (Config, error) {
	if _, err := os.Stat(path.Join(directory, configFile)); os.IsNotExist(err) {
		return Config{}, nil
	}
	return LoadConfig()
}
