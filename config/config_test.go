package config

import (
	"testing"
	"time"

	"github.com/spacesedan/sentiscore/internal/store"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "config/lexicon/afinn.tsv", cfg.LexiconPath)
	assert.Equal(t, 15*time.Second, cfg.HealthcheckInterval)
	assert.Equal(t, store.BackendValkey, cfg.Store.Backend)
	assert.Equal(t, "document:", cfg.Store.Valkey.KeyPrefix)
	assert.Equal(t, "sentiment.calculate", cfg.Kafka.RequestTopic)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "dynamodb")
	t.Setenv("DYNAMODB_TABLE", "NlpDocuments")
	t.Setenv("VALKEY_TLS", "true")
	t.Setenv("HEALTHCHECK_INTERVAL", "2s")
	t.Setenv("KAFKA_REQUEST_TOPIC", "nlp.sentiment")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, store.BackendDynamoDB, cfg.Store.Backend)
	assert.Equal(t, "NlpDocuments", cfg.Store.DynamoDB.Table)
	assert.True(t, cfg.Store.Valkey.UseTLS)
	assert.Equal(t, 2*time.Second, cfg.HealthcheckInterval)
	assert.Equal(t, "nlp.sentiment", cfg.Kafka.RequestTopic)
}

func TestLoad_ExplicitOverride(t *testing.T) {
	v := viper.New()
	v.Set("LEXICON_PATH", "/etc/sentiscore/AFINN-111.txt")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/etc/sentiscore/AFINN-111.txt", cfg.LexiconPath)
}

func TestValidate(t *testing.T) {
	valid, err := Load(viper.New())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Store.Backend = "hazelcast" }, want: "STORE_BACKEND"},
		{name: "missing lexicon", mutate: func(c *Config) { c.LexiconPath = "" }, want: "LEXICON_PATH"},
		{name: "missing valkey address", mutate: func(c *Config) { c.Store.Valkey.Address = "" }, want: "VALKEY_INIT_ADDRESS"},
		{name: "missing broker", mutate: func(c *Config) { c.Kafka.Broker = "" }, want: "KAFKA_BROKER"},
		{name: "zero interval", mutate: func(c *Config) { c.HealthcheckInterval = 0 }, want: "HEALTHCHECK_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	memory := valid
	memory.Store.Backend = store.BackendMemory
	memory.Store.Valkey.Address = ""
	assert.NoError(t, memory.Validate())
}
