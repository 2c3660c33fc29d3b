package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spacesedan/sentiscore/internal/clients/kafka_client"
	"github.com/spacesedan/sentiscore/internal/store"
	"github.com/spf13/viper"
)

// Config is the worker and CLI configuration, read from the environment.
type Config struct {
	AppEnv              string
	LogLevel            string
	LexiconPath         string
	HTTPAddr            string
	HealthcheckInterval time.Duration
	Store               store.Options
	Kafka               kafka_client.KafkaConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LEXICON_PATH", "config/lexicon/afinn.tsv")
	v.SetDefault("HTTP_ADDR", ":9102")
	v.SetDefault("HEALTHCHECK_INTERVAL", "15s")

	v.SetDefault("STORE_BACKEND", store.BackendValkey)
	v.SetDefault("VALKEY_INIT_ADDRESS", "localhost:6379")
	v.SetDefault("VALKEY_PASSWORD", "")
	v.SetDefault("VALKEY_TLS", false)
	v.SetDefault("VALKEY_KEY_PREFIX", store.DefaultValkeyKeyPrefix)
	v.SetDefault("AWS_REGION", "us-west-2")
	v.SetDefault("AWS_ENDPOINT", "")
	v.SetDefault("DYNAMODB_TABLE", store.DefaultDocumentsTable)

	v.SetDefault("KAFKA_BROKER", "localhost:29092")
	v.SetDefault("KAFKA_CONSUMER_GROUP_ID", "sentiscore-worker-group")
	v.SetDefault("KAFKA_REQUEST_TOPIC", kafka_client.KAFKA_TOPIC_SENTIMENT_CALCULATE)
	v.SetDefault("KAFKA_REPLY_TOPIC", kafka_client.KAFKA_TOPIC_SENTIMENT_REPLIES)
}

// Load reads the configuration from v, which should already have any
// flags bound. A nil v uses a fresh viper bound to the environment.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppEnv:              v.GetString("APP_ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LexiconPath:         v.GetString("LEXICON_PATH"),
		HTTPAddr:            v.GetString("HTTP_ADDR"),
		HealthcheckInterval: v.GetDuration("HEALTHCHECK_INTERVAL"),
		Store: store.Options{
			Backend: v.GetString("STORE_BACKEND"),
			Valkey: store.ValkeyOptions{
				Address:   v.GetString("VALKEY_INIT_ADDRESS"),
				Password:  v.GetString("VALKEY_PASSWORD"),
				UseTLS:    v.GetBool("VALKEY_TLS"),
				KeyPrefix: v.GetString("VALKEY_KEY_PREFIX"),
			},
			DynamoDB: store.DynamoDBOptions{
				Region:   v.GetString("AWS_REGION"),
				Endpoint: v.GetString("AWS_ENDPOINT"),
				Table:    v.GetString("DYNAMODB_TABLE"),
			},
		},
		Kafka: kafka_client.KafkaConfig{
			Broker:       v.GetString("KAFKA_BROKER"),
			GroupID:      v.GetString("KAFKA_CONSUMER_GROUP_ID"),
			RequestTopic: v.GetString("KAFKA_REQUEST_TOPIC"),
			ReplyTopic:   v.GetString("KAFKA_REPLY_TOPIC"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.LexiconPath == "" {
		errs = append(errs, errors.New("LEXICON_PATH is required"))
	}
	if c.HealthcheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("HEALTHCHECK_INTERVAL must be positive, got %s", c.HealthcheckInterval))
	}

	switch c.Store.Backend {
	case store.BackendValkey:
		if c.Store.Valkey.Address == "" {
			errs = append(errs, errors.New("VALKEY_INIT_ADDRESS is required for the valkey backend"))
		}
	case store.BackendDynamoDB:
		if c.Store.DynamoDB.Region == "" {
			errs = append(errs, errors.New("AWS_REGION is required for the dynamodb backend"))
		}
	case store.BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be one of %s, %s, %s; got %q",
			store.BackendValkey, store.BackendDynamoDB, store.BackendMemory, c.Store.Backend))
	}

	if c.Kafka.Broker == "" {
		errs = append(errs, errors.New("KAFKA_BROKER is required"))
	}
	if c.Kafka.RequestTopic == "" {
		errs = append(errs, errors.New("KAFKA_REQUEST_TOPIC is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("[Config] invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
