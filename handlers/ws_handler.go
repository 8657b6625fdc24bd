package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/civicseva/civicseva-api/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsPingInterval = 30 * time.Second

type WSHandler struct {
	hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Stream upgrades the connection and forwards report change events. An
// optional report_id query parameter narrows the feed to a single report;
// without it the client receives every event.
func (h *WSHandler) Stream(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Failed to upgrade websocket:", err)
		return
	}
	defer ws.Close()

	var reportID uint
	if v := c.Query("report_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(4002, "Invalid report_id"),
				time.Now().Add(time.Second))
			return
		}
		reportID = uint(id)
	}

	sub := h.hub.Subscribe(reportID)
	defer h.hub.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Drain client frames so close and ping/pong are processed; cancel on
	// any read error.
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			if err := ws.WriteJSON(event); err != nil {
				log.Println("Websocket write error:", err)
				return
			}
		}
	}
}
