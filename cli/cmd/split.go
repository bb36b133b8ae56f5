package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	splitCmd = &cobra.Command{
		Use:   "split [files...]",
		Short: "Dump the statements that will be executed to stdout",
		Long:  "Dump the statements that will be executed to stdout, with variables from sqlscript.yaml replaced. Without arguments every *.sql file under the directory is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigIfExists()
			if err != nil {
				return err
			}
			rules, err := cfg.RulesFor("")
			if err != nil {
				return err
			}
			scripts, err := loadScripts(rules, cfg.Variables, args, false)
			if err != nil {
				return err
			}
			if len(scripts) == 0 {
				fmt.Println("No SQL scripts found in given paths")
			}
			for _, script := range scripts {
				for _, b := range script.Patched(nil) {
					fmt.Printf("-- %s (delimiter %s)\n", b.StartPos, b.Delimiter)
					fmt.Println(b.Lines)
					fmt.Println("===")
				}
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(splitCmd)
}
