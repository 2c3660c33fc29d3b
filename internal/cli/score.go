package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spacesedan/sentiscore/internal/handlers"
	"github.com/spacesedan/sentiscore/internal/lexicon"
	"github.com/spacesedan/sentiscore/internal/models"
	"github.com/spacesedan/sentiscore/internal/sentiment"
	"github.com/spacesedan/sentiscore/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const dryRunDocumentID = "sentictl-dry-run"

func newScoreCmd(v *viper.Viper) *cobra.Command {
	var documentFile string

	cmd := &cobra.Command{
		Use:   "score [tokens...]",
		Short: "Score tokens or a tokenized document locally",
		Long: `Score tokens against the lexicon without a running worker.

With --document-file, the file must hold an analyzed text ({"sentences":[{"tokens":[...]}]})
and the sentiment analysis that the worker would store is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			lex, err := lexicon.LoadFile(cfg.LexiconPath)
			if err != nil {
				return err
			}
			scorer := sentiment.NewScorer(lex)

			var result any
			if documentFile != "" {
				result, err = scoreDocumentFile(cmd.Context(), scorer, documentFile)
				if err != nil {
					return err
				}
			} else {
				result = scorer.Score(args)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&documentFile, "document-file", "", "JSON file holding an analyzed text")
	return cmd
}

// scoreDocumentFile runs the document protocol against an in-memory store
// seeded with the file contents.
func scoreDocumentFile(ctx context.Context, scorer *sentiment.Scorer, path string) (models.SentimentAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.SentimentAnalysis{}, fmt.Errorf("read %s: %w", path, err)
	}

	gateway := store.NewMemoryGateway()
	if err := gateway.Put(ctx, dryRunDocumentID, models.FieldNLP, string(data)); err != nil {
		return models.SentimentAnalysis{}, err
	}

	return handlers.NewCalculateHandler(scorer, gateway).AnalyzeDocument(ctx, dryRunDocumentID)
}
