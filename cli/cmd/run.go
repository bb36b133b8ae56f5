package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlscript"
)

var (
	noTransaction bool

	runCmd = &cobra.Command{
		Use:   "run <dbname> [files...]",
		Short: "Runs the scripts against a database configured in sqlscript.yaml",
		Long: `Runs the scripts against a database configured in sqlscript.yaml, in lexical order.
All scripts are run in a single transaction unless --no-tx is given. Without file arguments
every *.sql file under the directory is run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.StandardLogger()
			ctx := context.Background()

			if len(args) < 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <dbname>")
			}
			dbname := args[0]

			config, err := LoadConfig()
			if err != nil {
				return err
			}

			dbconfig, ok := config.Databases[dbname]
			if !ok {
				return fmt.Errorf("database %s not present in configuration file", dbname)
			}
			rules, err := config.RulesFor(dbname)
			if err != nil {
				return err
			}

			scripts, err := loadScripts(rules, config.Variables, args[1:], false)
			if err != nil {
				return err
			}

			dbc, err := dbconfig.Open(ctx, logger.WithField("db", dbname))
			if err != nil {
				return err
			}
			defer func() {
				_ = dbc.Close()
			}()

			runner := sqlscript.Runner{
				Logger:      logger,
				Transaction: !noTransaction,
			}
			if err = runner.Run(ctx, dbc, scripts...); err != nil {
				return err
			}
			fmt.Printf("%d statements in %d scripts successfully run against %s\n", scripts.Len(), len(scripts), dbname)
			return nil
		},
	}
)

func init() {
	runCmd.Flags().BoolVar(&noTransaction, "no-tx", false, "run every statement on its own instead of in one transaction")
	rootCmd.AddCommand(runCmd)
}
