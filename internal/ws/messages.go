package ws

import (
	"encoding/json"
	"time"

	"building_simulator/internal/model"
	"building_simulator/internal/simulator"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeCommandWrite      = "command:write"
	TypeCommandRelinquish = "command:relinquish"

	// Server -> Client
	TypeSimState     = "sim:state"
	TypePointsUpdate = "points:update"
	TypeDeviceInfo   = "device:info"
	TypeCommandAck   = "command:ack"
	TypeCommandError = "command:error"
)

// Client -> Server messages

type CommandWritePayload struct {
	Point    string  `json:"point"`
	Value    float64 `json:"value"`
	Priority int     `json:"priority"`
}

type CommandRelinquishPayload struct {
	Point    string `json:"point"`
	Priority int    `json:"priority"`
}

// Server -> Client messages

type SimStatePayload struct {
	Time       string `json:"time"`
	Tick       int64  `json:"tick"`
	Equipment  string `json:"equipment"`
	DeviceName string `json:"device_name"`
	Running    bool   `json:"running"`
}

type PointsUpdatePayload struct {
	Points []model.Point `json:"points"`
}

type DeviceInfoPayload struct {
	ClientID   string        `json:"client_id"`
	Equipment  string        `json:"equipment"`
	DeviceName string        `json:"device_name"`
	Points     []model.Point `json:"points"`
}

type CommandAckPayload struct {
	ClientID string `json:"client_id"`
	Point    string `json:"point"`
	Priority int    `json:"priority"`
	Action   string `json:"action"` // "write" or "relinquish"
}

type CommandErrorPayload struct {
	ClientID string `json:"client_id"`
	Point    string `json:"point"`
	Error    string `json:"error"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func SimStateFromEngine(s simulator.State) SimStatePayload {
	return SimStatePayload{
		Time:       s.Time.Format(time.RFC3339),
		Tick:       s.Tick,
		Equipment:  s.Equipment,
		DeviceName: s.DeviceName,
		Running:    s.Running,
	}
}
