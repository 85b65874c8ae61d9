package ws

import (
	"log"

	"building_simulator/internal/model"
	"building_simulator/internal/simulator"
)

// Bridge implements simulator.Callback and broadcasts events to the
// WebSocket hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnState(s simulator.State) {
	msg, err := NewEnvelope(TypeSimState, SimStateFromEngine(s))
	if err != nil {
		log.Printf("Error marshaling sim state: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnPoints(pts []model.Point) {
	msg, err := NewEnvelope(TypePointsUpdate, PointsUpdatePayload{Points: pts})
	if err != nil {
		log.Printf("Error marshaling points update: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
