package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spacesedan/sentiscore/internal/bus"
	"github.com/spacesedan/sentiscore/internal/clients/kafka_client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRequestCmd(v *viper.Viper) *cobra.Command {
	var (
		documentID string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "request [tokens...]",
		Short: "Send a sentiment.calculate request to a worker and print the reply",
		Long: `Send tokens (direct mode) or --document <id> (document mode) to the worker.

Document requests that fail on the worker are not answered; the command
then exits with an error once --timeout elapses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := requestBody(documentID, args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			requester, err := kafka_client.NewRequester(cfg.Kafka)
			if err != nil {
				return err
			}
			defer requester.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			reply, err := requester.Request(ctx, body)
			if errors.Is(err, kafka_client.ErrNoReply) {
				return fmt.Errorf("no reply within %s", timeout)
			}
			if err != nil {
				return err
			}
			if reply.Status == bus.StatusBadRequest {
				return fmt.Errorf("worker rejected request: %s", reply.Body)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(reply.Body))
			return nil
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "document id to score from shared state")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "how long to wait for the reply")
	cmd.Flags().String("broker", "", "Kafka bootstrap servers (KAFKA_BROKER)")
	cmd.Flags().String("reply-topic", "", "topic the worker should reply on (KAFKA_REPLY_TOPIC)")
	_ = v.BindPFlag("KAFKA_BROKER", cmd.Flags().Lookup("broker"))
	_ = v.BindPFlag("KAFKA_REPLY_TOPIC", cmd.Flags().Lookup("reply-topic"))
	return cmd
}

// requestBody encodes a document id as a JSON string or tokens as a JSON
// array, matching the two request shapes the worker accepts.
func requestBody(documentID string, tokens []string) ([]byte, error) {
	if documentID != "" {
		if len(tokens) > 0 {
			return nil, errors.New("pass either tokens or --document, not both")
		}
		return json.Marshal(documentID)
	}
	if tokens == nil {
		tokens = []string{}
	}
	return json.Marshal(tokens)
}
