package cli

import (
	"fmt"

	"github.com/spacesedan/sentiscore/internal/lexicon"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newLexiconCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Work with lexicon files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check [file]",
		Short: "Load a lexicon and report its size or the first malformed line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString("LEXICON_PATH")
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				cfg, err := loadConfig(v)
				if err != nil {
					return err
				}
				path = cfg.LexiconPath
			}

			lex, err := lexicon.LoadFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries\n", path, lex.Len())
			return nil
		},
	})
	return cmd
}
