package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	remoteCmd = &cobra.Command{
		Use:   "remote",
		Short: "Lists databases listed in sqlscript.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			var names []string
			for k := range cfg.Databases {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				fmt.Println(k)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(remoteCmd)
}
