package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func waitForSubscribers(t *testing.T, h *Hub, marketID string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		h.mu.RLock()
		got := len(h.subs[marketID])
		h.mu.RUnlock()
		if got == n {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers for %s, got %d", n, marketID, got)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Pong replies and broadcasts target the same connection from different
// goroutines; both must arrive intact.
func TestHubBroadcastAndPongConcurrently(t *testing.T) {
	hub := NewHub(func(r *http.Request) bool { return true })
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "subscribe", MarketID: "m1"}))
	waitForSubscribers(t, hub, "m1", 1)

	const updates = 20
	go func() {
		for i := 0; i < updates; i++ {
			hub.Broadcast(PriceBroadcast{MarketID: "m1", Payload: map[string]int{"version": i}})
		}
	}()
	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "ping"}))

	pongs, broadcasts := 0, 0
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for broadcasts < updates || pongs == 0 {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg struct {
			Type     string `json:"type"`
			MarketID string `json:"market_id"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		if msg.Type == "pong" {
			pongs++
		} else {
			require.Equal(t, "m1", msg.MarketID)
			broadcasts++
		}
	}
}

func TestHubUnsubscribeStopsBroadcasts(t *testing.T) {
	hub := NewHub(func(r *http.Request) bool { return true })
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "subscribe", MarketID: "m1"}))
	waitForSubscribers(t, hub, "m1", 1)
	require.NoError(t, conn.WriteJSON(ClientMsg{Type: "unsubscribe", MarketID: "m1"}))
	waitForSubscribers(t, hub, "m1", 0)

	hub.Broadcast(PriceBroadcast{MarketID: "m1", Payload: "stale"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err, "no message expected after unsubscribe")
}
