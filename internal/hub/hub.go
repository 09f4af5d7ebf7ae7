// Package hub implements the realtime broadcast hub: a registry of live
// websocket sessions and a fan-out of agent location events to all of them.
// Registry state is owned by a single run loop; handlers communicate with it
// exclusively through channels.
package hub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/fleetpulse/tracking-api/internal/api/metrics"
	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

const (
	defaultSendBuffer = 32
	broadcastBuffer   = 64
)

// SampleRecorder hands location samples to the async persistence pipeline.
// TryEnqueue must never block: it reports false when the pipeline is full
// and the sample is dropped.
type SampleRecorder interface {
	TryEnqueue(sample domain.LocationSample) bool
}

// Hub owns the set of connected sessions and relays location events.
type Hub struct {
	register   chan *Session
	unregister chan *Session
	broadcast  chan []byte

	sessions   map[*Session]struct{}
	recorder   SampleRecorder
	sendBuffer int
	validate   *validator.Validate
	log        zerolog.Logger
}

// New creates a Hub. sendBuffer bounds each session's outbound queue; a
// session that falls behind by more than that many frames is disconnected.
func New(recorder SampleRecorder, sendBuffer int, log zerolog.Logger) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Hub{
		register:   make(chan *Session),
		unregister: make(chan *Session),
		broadcast:  make(chan []byte, broadcastBuffer),
		sessions:   make(map[*Session]struct{}),
		recorder:   recorder,
		sendBuffer: sendBuffer,
		validate:   validator.New(),
		log:        log,
	}
}

// Run drives the hub until ctx is cancelled. All registry mutation happens
// here, so no lock is needed.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for s := range h.sessions {
				h.drop(s)
			}
			return

		case s := <-h.register:
			h.sessions[s] = struct{}{}
			metrics.WSConnections.Inc()
			h.log.Info().Str("sid", s.id).Int("sessions", len(h.sessions)).Msg("session connected")
			h.ack(s)

		case s := <-h.unregister:
			if _, ok := h.sessions[s]; ok {
				h.drop(s)
				h.log.Info().Str("sid", s.id).Int("sessions", len(h.sessions)).Msg("session disconnected")
			}

		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

// HandleConnection adopts an upgraded websocket connection: assigns a session
// id, registers it and starts the read/write pumps.
func (h *Hub) HandleConnection(conn *websocket.Conn) *Session {
	s := &Session{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}
	h.register <- s
	go s.writePump()
	go s.readPump()
	return s
}

// handleMessage dispatches one inbound frame. Unknown or malformed frames
// are ignored; the realtime channel has no error path back to the client.
func (h *Hub) handleMessage(s *Session, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.log.Debug().Err(err).Str("sid", s.id).Msg("discarding malformed frame")
		return
	}

	switch env.Event {
	case EventLocationUpdate:
		h.handleLocationUpdate(s, env.Data)
	default:
		h.log.Debug().Str("sid", s.id).Str("event", env.Event).Msg("ignoring unknown event")
	}
}

// handleLocationUpdate relays the payload to every connected session, then
// enqueues the sample for persistence. Broadcast always comes first: a slow
// or failing store must never delay live delivery.
func (h *Hub) handleLocationUpdate(s *Session, data json.RawMessage) {
	var upd LocationUpdate
	if err := json.Unmarshal(data, &upd); err != nil {
		h.log.Debug().Err(err).Str("sid", s.id).Msg("discarding malformed location_update")
		return
	}
	if err := h.validate.Struct(&upd); err != nil {
		h.log.Debug().Err(err).Str("sid", s.id).Msg("discarding invalid location_update")
		return
	}

	metrics.LocationUpdatesTotal.Inc()

	out, err := json.Marshal(Envelope{Event: EventAgentLocationUpdate, Data: data})
	if err != nil {
		h.log.Error().Err(err).Msg("marshal broadcast frame")
		return
	}
	h.broadcast <- out

	sample := domain.LocationSample{
		AgentID:   upd.AgentID,
		OrderID:   upd.OrderID,
		Lat:       upd.Lat,
		Lng:       upd.Lng,
		Timestamp: time.Now().UTC(),
	}
	if !h.recorder.TryEnqueue(sample) {
		metrics.SamplesDroppedTotal.Inc()
		h.log.Warn().Str("agent_id", upd.AgentID).Msg("persistence queue full, location sample dropped")
	}
}

// fanOut delivers one frame to every session. A session whose send buffer is
// full is disconnected rather than buffered without bound; dropping the
// session instead of individual frames keeps per-session ordering intact.
func (h *Hub) fanOut(msg []byte) {
	for s := range h.sessions {
		select {
		case s.send <- msg:
		default:
			metrics.LaggingSessionsTotal.Inc()
			h.log.Warn().Str("sid", s.id).Msg("session lagging, disconnecting")
			h.drop(s)
		}
	}
	metrics.BroadcastsTotal.Inc()
}

// ack sends the connection_response with the assigned session id. Best
// effort only.
func (h *Hub) ack(s *Session) {
	data, err := json.Marshal(connectionResponse{Status: "connected", SID: s.id})
	if err != nil {
		return
	}
	frame, err := json.Marshal(Envelope{Event: EventConnectionResponse, Data: data})
	if err != nil {
		return
	}
	select {
	case s.send <- frame:
	default:
	}
}

// drop removes a session from the registry and closes its send channel,
// which makes writePump close the socket.
func (h *Hub) drop(s *Session) {
	delete(h.sessions, s)
	close(s.send)
	metrics.WSConnections.Dec()
}
