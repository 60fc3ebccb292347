package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/config"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/logger"
	"github.com/Cruelhelp/GoatMouth-sub000/internal/shared/metrics"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulator_ws_connections",
		Help: "Connected WebSocket clients",
	})
	wsMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_ws_messages_sent_total",
		Help: "Total WS messages sent",
	})
)

// simMarket is one simulated market with a random-walking yes probability.
type simMarket struct {
	ID       string
	Title    string
	EndDate  time.Time
	YesPrice float64
	Volume   int64
}

func catalog(now time.Time) []*simMarket {
	return []*simMarket{
		{ID: "MKT_001", Title: "Reggae Boyz qualify for the World Cup?", EndDate: now.AddDate(0, 6, 0), YesPrice: 0.35},
		{ID: "MKT_002", Title: "Hurricane hits Jamaica before October?", EndDate: now.AddDate(0, 4, 0), YesPrice: 0.20},
		{ID: "MKT_003", Title: "Bolt 4x100 record broken this season?", EndDate: now.AddDate(0, 8, 0), YesPrice: 0.08},
		{ID: "MKT_004", Title: "JSE index closes the year up 10%?", EndDate: now.AddDate(0, 10, 0), YesPrice: 0.55},
		{ID: "MKT_005", Title: "Dancehall single tops global charts this year?", EndDate: now.AddDate(0, 9, 0), YesPrice: 0.42},
	}
}

// step moves the yes probability by a small random amount, clamped so the
// market always stays quotable on both sides.
func (m *simMarket) step() {
	m.YesPrice += (rand.Float64() - 0.5) * 0.04
	if m.YesPrice < 0.02 {
		m.YesPrice = 0.02
	}
	if m.YesPrice > 0.98 {
		m.YesPrice = 0.98
	}
	m.Volume += rand.Int63n(50000)
}

type clientConn struct {
	id   string
	conn *websocket.Conn
}

type hub struct {
	mu      sync.RWMutex
	clients map[string]*clientConn
	log     *zap.Logger
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		clients: make(map[string]*clientConn),
		log:     log,
	}
}

func (h *hub) add(c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	wsConnections.Inc()
	h.log.Info("ws client connected", zap.String("client_id", c.id))
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		wsConnections.Dec()
		h.log.Info("ws client disconnected", zap.String("client_id", id))
	}
}

func (h *hub) broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msg, _ := json.Marshal(v)
	for id, c := range h.clients {
		_ = c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warn("ws write failed", zap.String("client_id", id), zap.Error(err))
			_ = c.conn.Close()
		} else {
			wsMessagesSent.Inc()
		}
	}
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	prometheus.MustRegister(wsConnections, wsMessagesSent)

	h := newHub(log)
	markets := catalog(time.Now().UTC())

	// Walk every market and broadcast fresh prices every 3 seconds.
	go func() {
		ticker := time.NewTicker(3 * time.Second)
		defer ticker.Stop()
		version := 1
		for range ticker.C {
			for _, m := range markets {
				m.step()
				h.broadcast(events.PriceUpdate{
					MarketID:         m.ID,
					Title:            m.Title,
					YesPrice:         m.YesPrice,
					NoPrice:          1 - m.YesPrice,
					Status:           "active",
					TotalVolumeCents: m.Volume,
					EndDate:          m.EndDate,
					UpdatedAt:        time.Now().UTC(),
					Source:           cfg.ServiceName,
					Version:          version,
				})
			}
			version++
		}
	}()

	metrics.StartMetricsServer(cfg.MetricsPort, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("ws upgrade failed", zap.Error(err))
			return
		}
		id := fmt.Sprintf("%d", time.Now().UnixNano())
		c := &clientConn{id: id, conn: conn}
		h.add(c)

		go func() {
			defer func() {
				h.remove(id)
				_ = conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	addr := ":" + cfg.HTTPPort
	log.Info("market-simulator listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Fatal("simulator failed", zap.Error(err))
	}
}
