package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"building_simulator/internal/simulator"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes command writes to the
// engine.
type Handler struct {
	hub    *Hub
	engine *simulator.Engine
}

func NewHandler(hub *Hub, engine *simulator.Engine) *Handler {
	return &Handler{hub: hub, engine: engine}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := newClient(h.hub, conn)

	h.hub.Register(client)
	go client.writePump()

	h.sendDeviceInfo(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeCommandWrite:
		var p CommandWritePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid command:write payload: %v", err)
			return
		}
		if err := h.engine.Write(p.Point, p.Value, p.Priority); err != nil {
			h.sendCommandError(c, p.Point, err)
			return
		}
		h.sendCommandAck(c, p.Point, p.Priority, "write")

	case TypeCommandRelinquish:
		var p CommandRelinquishPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid command:relinquish payload: %v", err)
			return
		}
		if err := h.engine.Relinquish(p.Point, p.Priority); err != nil {
			h.sendCommandError(c, p.Point, err)
			return
		}
		h.sendCommandAck(c, p.Point, p.Priority, "relinquish")

	default:
		log.Printf("Unknown message type: %s", env.Type)
	}
}

func (h *Handler) sendDeviceInfo(c *Client) {
	state := h.engine.State()
	msg, err := NewEnvelope(TypeDeviceInfo, DeviceInfoPayload{
		ClientID:   c.ID,
		Equipment:  state.Equipment,
		DeviceName: state.DeviceName,
		Points:     h.engine.Points(),
	})
	if err != nil {
		log.Printf("Error creating device:info message: %v", err)
		return
	}
	h.sendTo(c, msg)
}

func (h *Handler) sendCommandAck(c *Client, point string, priority int, action string) {
	msg, err := NewEnvelope(TypeCommandAck, CommandAckPayload{
		ClientID: c.ID,
		Point:    point,
		Priority: priority,
		Action:   action,
	})
	if err != nil {
		return
	}
	h.sendTo(c, msg)
}

func (h *Handler) sendCommandError(c *Client, point string, cmdErr error) {
	msg, err := NewEnvelope(TypeCommandError, CommandErrorPayload{
		ClientID: c.ID,
		Point:    point,
		Error:    cmdErr.Error(),
	})
	if err != nil {
		return
	}
	h.sendTo(c, msg)
}

func (h *Handler) sendTo(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}
