// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Business code depends on the Publisher and Consumer interfaces only; the
// concrete broker (NATS, Kafka, NSQ) is selected by configuration through the
// factory, so deployments can swap brokers without touching usecase code.
package messaging
