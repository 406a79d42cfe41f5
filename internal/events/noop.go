package events

import "context"

// NoopPublisher discards all events. Used when no NATS URL is configured
// and in tests.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (*NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (*NoopPublisher) Close() {}
