package kafka_config

import "time"

const (
	DefaultKafkaEnabled     = false
	DefaultKafkaBrokers     = "localhost:9092"
	DefaultKafkaEventsTopic = "hallbooking.events"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerWriteTimeout = 5 * time.Second
	DefaultProducerRequireAcks  = -1 // all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	DefaultEnableMiddleware = true
)
