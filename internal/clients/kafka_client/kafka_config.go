package kafka_client

type KafkaConfig struct {
	Broker       string
	GroupID      string
	RequestTopic string
	ReplyTopic   string
}
