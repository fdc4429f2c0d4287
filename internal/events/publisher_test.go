package events

import (
	"os"
	"testing"
)

func TestConnectWithoutBroker(t *testing.T) {
	os.Unsetenv("MQTT_BROKER_URL")
	pub, err := Connect()
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if pub != nil {
		t.Error("expected nil publisher when MQTT_BROKER_URL is unset")
	}
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var pub *Publisher
	// must not panic
	pub.Publish("trip_update", "trip", "T1", "update", map[string]string{"id": "T1"})
	pub.Close()
}
