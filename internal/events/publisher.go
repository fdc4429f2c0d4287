// Package events fans record-change notifications out over MQTT so
// connected dashboards refresh without polling.
package events

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/heinrichnel/fleetops/internal/models"
)

// Publisher publishes SyncEvents to fleetops/sync/{entityType}. A nil
// Publisher is a no-op so callers need no broker in tests or local runs.
type Publisher struct {
	client mqtt.Client
}

// Connect dials the broker named by MQTT_BROKER_URL. Returns nil (no
// publisher, no error) when the variable is unset; the sync fan-out is
// optional plumbing.
func Connect() (*Publisher, error) {
	broker := os.Getenv("MQTT_BROKER_URL")
	if broker == "" {
		return nil, nil
	}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("fleetops-server-" + uuid.NewString()[:8]).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timed out: %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}
	log.WithField("broker", broker).Info("connected to mqtt broker")
	return &Publisher{client: client}, nil
}

// Publish sends a sync event. Delivery is fire-and-forget: the mutation
// already committed, so failures are logged, never surfaced.
func (p *Publisher) Publish(eventType, entityType, entityID, action string, data interface{}) {
	if p == nil || p.client == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		log.WithError(err).Error("sync event payload marshal failed")
		return
	}
	event := models.SyncEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityID:   entityID,
		EntityType: entityType,
		Action:     action,
		Data:       payload,
		Timestamp:  time.Now(),
		Version:    1,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("sync event marshal failed")
		return
	}
	topic := "fleetops/sync/" + entityType
	token := p.client.Publish(topic, 0, false, body)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			log.WithFields(log.Fields{
				"topic": topic,
				"error": err,
			}).Error("sync event publish failed")
		}
	}()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
