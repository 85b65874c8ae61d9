// Package telemetry publishes point snapshots to an MQTT broker when one is
// configured. Publishing is one-way: nothing read from the broker ever feeds
// back into the physics, so equipment processes stay uncoordinated.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"building_simulator/internal/model"
	"building_simulator/internal/simulator"
)

const connectTimeout = 5 * time.Second

// Publisher implements simulator.Callback and mirrors each tick's points to
// a broker topic.
type Publisher struct {
	client mqtt.Client
	topic  string

	// state is refreshed by OnState before OnPoints fires; the engine
	// invokes callbacks sequentially.
	state simulator.State
}

type snapshot struct {
	Time      string        `json:"time"`
	Equipment string        `json:"equipment"`
	Points    []model.Point `json:"points"`
}

// NewPublisher connects to the broker and returns a publisher for the
// given equipment's topic: <prefix>/<equipment>/points.
func NewPublisher(broker, clientID, topicPrefix, equipment string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}

	return &Publisher{
		client: client,
		topic:  fmt.Sprintf("%s/%s/points", topicPrefix, equipment),
	}, nil
}

func (p *Publisher) OnState(s simulator.State) {
	p.state = s
}

func (p *Publisher) OnPoints(pts []model.Point) {
	payload, err := json.Marshal(snapshot{
		Time:      p.state.Time.Format(time.RFC3339),
		Equipment: p.state.Equipment,
		Points:    pts,
	})
	if err != nil {
		log.Printf("telemetry: marshal snapshot: %v", err)
		return
	}
	// QoS 0 fire-and-forget; a dropped sample is replaced 5 seconds later.
	p.client.Publish(p.topic, 0, false, payload)
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
