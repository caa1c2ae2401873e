package service

import (
	"context"
)

// Marketplace event types published to the message queue.
const (
	EventCropListed              = "crop.listed"
	EventTransportRequestCreated = "transport_request.created"
	EventTransportRequestUpdated = "transport_request.updated"
)

// MarketplaceEvent represents a domain event fanned out to downstream
// consumers (analytics, search indexing, notification workers).
type MarketplaceEvent struct {
	RequestID string            `json:"request_id,omitempty"` // For distributed tracing
	Type      string            `json:"type"`
	UserID    string            `json:"user_id"`
	EntityID  string            `json:"entity_id"`
	Payload   map[string]string `json:"payload,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishMarketplaceEvent publishes a marketplace event for async processing
	PublishMarketplaceEvent(ctx context.Context, event *MarketplaceEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
