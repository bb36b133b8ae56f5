package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	hashCmd = &cobra.Command{
		Use:   "hash [files...]",
		Short: "Print the checksum of each script, to tell changed scripts apart",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigIfExists()
			if err != nil {
				return err
			}
			rules, err := cfg.RulesFor("")
			if err != nil {
				return err
			}
			scripts, err := loadScripts(rules, nil, args, false)
			if err != nil {
				return err
			}
			for _, script := range scripts {
				fmt.Printf("%s  %s\n", script.Checksum, script.File)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(hashCmd)
}
