package cli

import (
	"github.com/spacesedan/sentiscore/config"
	"github.com/spacesedan/sentiscore/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the sentictl command tree. Flags are bound into v so
// that they take precedence over environment variables.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "sentictl",
		Short: "Inspect lexicons and exercise the sentiment scoring worker",
		Long: `sentictl loads and checks AFINN-style lexicons, scores tokens locally
and sends sentiment.calculate requests to a running worker over Kafka.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables
3. config/envs/.env.<APP_ENV>
4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogger(v.GetString("LOG_LEVEL"))
		},
	}

	root.PersistentFlags().String("lexicon", "", "path to the lexicon file (LEXICON_PATH)")
	root.PersistentFlags().String("log-level", "", "log level (LOG_LEVEL)")
	_ = v.BindPFlag("LEXICON_PATH", root.PersistentFlags().Lookup("lexicon"))
	_ = v.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newLexiconCmd(v),
		newScoreCmd(v),
		newRequestCmd(v),
	)
	return root
}

func loadConfig(v *viper.Viper) (config.Config, error) {
	return config.Load(v)
}
