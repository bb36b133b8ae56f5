package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sqlscript",
		Short:        "sqlscript",
		SilenceUsage: true,
		Long: `CLI tool for splitting SQL scripts into statements and running them against a database.
Scripts may redefine the statement delimiter with "DELIMITER <value>" lines.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	directory string
	dialect   string
	verbose   bool
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "path to directory and subtree which will be scanned for *.sql-files")
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "", "generic or mysql; overrides the dialect in sqlscript.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every statement as it is executed")
}
