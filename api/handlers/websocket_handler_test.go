package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"packtrack-service/auth"
	"packtrack-service/config"
	"packtrack-service/socket"
)

func TestServeWsPingsIdleClients(t *testing.T) {
	oldWait, oldPeriod := pongWait, pingPeriod
	pongWait, pingPeriod = 150*time.Millisecond, 30*time.Millisecond
	t.Cleanup(func() { pongWait, pingPeriod = oldWait, oldPeriod })

	gin.SetMode(gin.TestMode)
	sessions, err := auth.NewSessions(config.JWTConfig{Secret: "ws-secret", ExpireHours: 1})
	if err != nil {
		t.Fatalf("new sessions failed: %v", err)
	}
	token, _, err := sessions.Issue(&auth.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	hub := socket.NewHub(zap.NewNop())
	h := &WebSocketHandler{Hub: hub, Sessions: sessions, Logger: zap.NewNop()}
	router := gin.New()
	router.GET("/ws", h.ServeWs)
	srv := httptest.NewServer(router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?token="+token, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	pinged := make(chan struct{}, 16)
	conn.SetPingHandler(func(appData string) error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-pinged:
	case <-time.After(2 * time.Second):
		t.Fatalf("server never pinged the client")
	}

	// a silent client that answers pings outlives several pong waits
	time.Sleep(3 * pongWait)
	if n := hub.Connections("user-1"); n != 1 {
		t.Fatalf("expected the connection to stay registered, got %d", n)
	}
}
