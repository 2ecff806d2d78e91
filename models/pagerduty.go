package models

import "time"

const (
	EventActionTrigger = "trigger"
	EventActionResolve = "resolve"
)

// PagerDutyPayload is the alert body of an Events API v2 trigger event.
type PagerDutyPayload struct {
	Summary       string         `json:"summary"`
	Source        string         `json:"source"`
	Severity      Severity       `json:"severity"`
	Timestamp     string         `json:"timestamp"`
	Component     string         `json:"component,omitempty"`
	Class         string         `json:"class,omitempty"`
	CustomDetails map[string]any `json:"custom_details,omitempty"`
}

// PagerDutyEvent is the enqueue request body of the Events API v2. Resolve
// events carry no payload.
type PagerDutyEvent struct {
	RoutingKey  string            `json:"routing_key"`
	DedupKey    string            `json:"dedup_key"`
	EventAction string            `json:"event_action"`
	Payload     *PagerDutyPayload `json:"payload,omitempty"`
}

type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
)

// AlertDelivery is one PagerDuty event waiting to be sent, or the record of
// its outcome. The routing key is injected at send time, never persisted.
type AlertDelivery struct {
	Id          string
	AlertId     string
	DedupKey    string
	EventAction string
	Payload     *PagerDutyPayload
	Status      DeliveryStatus
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
	SentAt      *time.Time
}

type AlertDeliveryCreate struct {
	AlertId     string
	DedupKey    string
	EventAction string
	Payload     *PagerDutyPayload
}
