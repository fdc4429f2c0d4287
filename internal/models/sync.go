package models

import (
	"encoding/json"
	"time"
)

// SyncEvent is a record-change notification fanned out to connected clients
// whenever a mutation commits.
type SyncEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"` // "trip_update", "cost_update", "invoice_update", "payment_update", "system_update"
	EntityID   string          `json:"entityId"`
	EntityType string          `json:"entityType"` // "trip", "cost", "diesel", "missed_load"
	Action     string          `json:"action"`     // "create", "update", "delete"
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	UserID     string          `json:"userId,omitempty"`
	Version    int             `json:"version"`
}
