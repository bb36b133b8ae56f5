package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlscript/sqlparser"
)

var (
	tokensCmd = &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the tokens of a script, for debugging how a script is split",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <file>")
			}
			cfg, err := loadConfigIfExists()
			if err != nil {
				return err
			}
			rules, err := cfg.RulesFor("")
			if err != nil {
				return err
			}

			filename := args[0]
			if !filepath.IsAbs(filename) {
				filename = filepath.Join(directory, filename)
			}
			buf, err := os.ReadFile(filename)
			if err != nil {
				return err
			}

			tokens, err := sqlparser.NewScanner(sqlparser.FileRef(args[0]), string(buf), rules).Scan()
			if err != nil {
				return err
			}
			for _, t := range tokens {
				fmt.Printf("%d:%d\t%-22s %s\n", t.Line, t.Col, t.Type, repr.String(t.Value))
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(tokensCmd)
}
