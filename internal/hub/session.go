package hub

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Session is one live realtime connection, agent or observer. The two sides
// are symmetric: any session may emit location updates and every session
// receives the broadcast.
type Session struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	// send is the bounded outbound buffer. The hub run loop is the only
	// writer; writePump is the only reader. A full buffer disconnects the
	// session (see Hub.fanOut).
	send chan []byte
}

// ID returns the opaque session identifier assigned at connect time.
func (s *Session) ID() string { return s.id }

// readPump reads frames from the socket and hands them to the hub. It owns
// the unregister path: any read error tears the session down.
func (s *Session) readPump() {
	defer func() {
		s.hub.unregister <- s
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.hub.log.Debug().Err(err).Str("sid", s.id).Msg("session read error")
			}
			return
		}
		s.hub.handleMessage(s, msg)
	}
}

// writePump drains the send buffer onto the socket and keeps the connection
// alive with pings. It exits when the hub closes the send channel or a write
// fails.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
