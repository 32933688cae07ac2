package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"incidentserver/internal/logger"
	ws "incidentserver/internal/service/websocket"
)

// Upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsWebsocketHandler registers dashboard connections in the hub so they
// receive incident events. Incoming frames are read and discarded until the
// client goes away.
func EventsWebsocketHandler(hub *ws.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error", zap.Error(err))
			return
		}

		if !hub.Register(connection) {
			_ = connection.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			connection.Close()
			return
		}
		defer hub.Unregister(connection)

		logger.Info("Event client connected", zap.String("remote", r.RemoteAddr))

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Info("Event client disconnected normally")
				} else {
					logger.Warn("Event client disconnected", zap.Error(err))
				}
				return
			}
		}
	}
}
