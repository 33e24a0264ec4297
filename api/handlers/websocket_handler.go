package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"packtrack-service/api/response"
	"packtrack-service/auth"
	"packtrack-service/socket"
)

var (
	// pongWait is how long a connection may stay silent before it is dropped.
	pongWait = 60 * time.Second
	// pingPeriod must stay below pongWait so a live client always answers in time.
	pingPeriod = pongWait * 9 / 10
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub      *socket.Hub
	Sessions *auth.Sessions
	Logger   *zap.Logger
}

// ServeWs authenticates with the token query parameter or the session cookie
// and keeps the connection registered until the client goes away.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		if cookie, err := c.Cookie(auth.SessionCookie); err == nil {
			token = cookie
		}
	}
	if token == "" {
		response.Unauthorized(c, "token is required")
		return
	}
	claims, err := h.Sessions.Parse(token)
	if err != nil {
		response.Unauthorized(c, "invalid or expired token")
		return
	}
	ownerID := claims.OwnerID()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}

	h.Hub.Register(ownerID, conn)
	defer func() {
		h.Hub.Unregister(ownerID, conn)
		conn.Close()
	}()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Logger.Debug("Unexpected websocket close", zap.String("owner_id", ownerID), zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// keepAlive pings the client every pingPeriod until done is closed or a ping
// cannot be written.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
