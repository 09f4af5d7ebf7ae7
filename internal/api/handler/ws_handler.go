package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fleetpulse/tracking-api/internal/hub"
)

// WSHandler upgrades HTTP requests to websocket sessions on the realtime hub.
type WSHandler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(h *hub.Hub, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Agents and dashboards connect from arbitrary origins; the
			// realtime channel carries no per-client secrets.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve handles GET /ws.
//
// @Summary      Open a realtime tracking session
// @Description  Upgrades to a websocket. The server replies with a connection_response event, accepts location_update events, and broadcasts agent_location_update events to every connected session.
// @Tags         realtime
// @Router       /ws [get]
func (h *WSHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	h.hub.HandleConnection(conn)
	return nil
}
