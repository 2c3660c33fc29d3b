package kafka_client

import "time"

const (
	KAFKA_TOPIC_SENTIMENT_CALCULATE = "sentiment.calculate"         // requests for both scoring modes
	KAFKA_TOPIC_SENTIMENT_REPLIES   = "sentiment.calculate.replies" // default reply-to topic for sentictl
)

const (
	HEADER_REPLY_TO       = "reply-to"
	HEADER_CORRELATION_ID = "correlation-id"
	HEADER_STATUS         = "status"
)

const (
	MAX_RETRIES  = 5
	RETRY_DELAY  = 2 * time.Second
	READ_TIMEOUT = time.Second
)
