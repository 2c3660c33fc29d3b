package kafka_client

import (
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/sentiscore/internal/bus"
)

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// ToBusMessage converts a consumed request. The correlation id falls back
// to the message key when the header is missing.
func ToBusMessage(msg *kafka.Message) bus.Message {
	var address string
	if msg.TopicPartition.Topic != nil {
		address = *msg.TopicPartition.Topic
	}

	correlationID := headerValue(msg.Headers, HEADER_CORRELATION_ID)
	if correlationID == "" {
		correlationID = string(msg.Key)
	}

	return bus.Message{
		Address:       address,
		CorrelationID: correlationID,
		ReplyTo:       headerValue(msg.Headers, HEADER_REPLY_TO),
		Body:          msg.Value,
	}
}

// RequestMessage builds a request for topic that asks for the reply on replyTo.
func RequestMessage(topic, replyTo, correlationID string, body []byte) *kafka.Message {
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(correlationID),
		Value:          body,
		Headers: []kafka.Header{
			{Key: HEADER_REPLY_TO, Value: []byte(replyTo)},
			{Key: HEADER_CORRELATION_ID, Value: []byte(correlationID)},
		},
	}
}

// ReplyMessage builds the reply to req on req's reply-to topic.
func ReplyMessage(req bus.Message, reply bus.Reply) *kafka.Message {
	topic := req.ReplyTo
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(req.CorrelationID),
		Value:          reply.Body,
		Headers: []kafka.Header{
			{Key: HEADER_CORRELATION_ID, Value: []byte(req.CorrelationID)},
			{Key: HEADER_STATUS, Value: []byte(reply.Status)},
		},
	}
}

// ParseReply extracts the correlation id and reply from a consumed reply.
func ParseReply(msg *kafka.Message) (string, bus.Reply) {
	status := bus.Status(headerValue(msg.Headers, HEADER_STATUS))
	if status == "" {
		status = bus.StatusOK
	}
	return headerValue(msg.Headers, HEADER_CORRELATION_ID), bus.Reply{
		Status: status,
		Body:   msg.Value,
	}
}
