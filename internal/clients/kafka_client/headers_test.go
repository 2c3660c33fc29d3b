package kafka_client

import (
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/sentiscore/internal/bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMessage_ToBusMessage(t *testing.T) {
	msg := RequestMessage(KAFKA_TOPIC_SENTIMENT_CALCULATE, "replies", "c-1", []byte(`["good"]`))

	got := ToBusMessage(msg)
	assert.Equal(t, bus.Message{
		Address:       KAFKA_TOPIC_SENTIMENT_CALCULATE,
		CorrelationID: "c-1",
		ReplyTo:       "replies",
		Body:          []byte(`["good"]`),
	}, got)
}

func TestToBusMessage_Fallbacks(t *testing.T) {
	msg := &kafka.Message{
		Key:   []byte("key-1"),
		Value: []byte(`"doc-1"`),
	}

	got := ToBusMessage(msg)
	assert.Equal(t, "", got.Address)
	assert.Equal(t, "key-1", got.CorrelationID)
	assert.Equal(t, "", got.ReplyTo)
}

func TestReplyMessage_ParseReply(t *testing.T) {
	req := bus.Message{CorrelationID: "c-1", ReplyTo: "replies"}
	msg := ReplyMessage(req, bus.Reply{Status: bus.StatusBadRequest, Body: []byte("bad_request: request body is not a JSON array")})

	require.NotNil(t, msg.TopicPartition.Topic)
	assert.Equal(t, "replies", *msg.TopicPartition.Topic)
	assert.Equal(t, kafka.PartitionAny, msg.TopicPartition.Partition)
	assert.Equal(t, []byte("c-1"), msg.Key)

	id, reply := ParseReply(msg)
	assert.Equal(t, "c-1", id)
	assert.Equal(t, bus.StatusBadRequest, reply.Status)
	assert.Equal(t, "bad_request: request body is not a JSON array", string(reply.Body))
}

func TestParseReply_DefaultsToOK(t *testing.T) {
	id, reply := ParseReply(&kafka.Message{Value: []byte(`[3]`)})
	assert.Equal(t, "", id)
	assert.Equal(t, bus.StatusOK, reply.Status)
}
