// Package live exposes a small observation endpoint for long batch runs:
// Prometheus metrics plus a WebSocket stream of solve-progress events.
package live

import (
    "log"
    "net/http"
    "time"

    "github.com/gorilla/websocket"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "github.com/kevincorizi/PoliTO-CoIoTe/internal/metrics"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/progress"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

type Server struct {
    Broker progress.Broker
}

func NewServer(b progress.Broker) *Server {
    return &Server{Broker: b}
}

// Handler builds the observation mux.
func (s *Server) Handler() http.Handler {
    mux := http.NewServeMux()
    mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
    mux.HandleFunc("/v1/progress/ws", s.ProgressWSHandler)
    return mux
}

// ListenAndServe runs the observation endpoint until the process exits.
func (s *Server) ListenAndServe(addr string) error {
    srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
    log.Printf("observation endpoint listening on %s", addr)
    return srv.ListenAndServe()
}

// ProgressWSHandler streams progress events for ?instance=<name> as JSON
// frames until the client goes away.
func (s *Server) ProgressWSHandler(w http.ResponseWriter, r *http.Request) {
    instance := r.URL.Query().Get("instance")
    if instance == "" {
        http.Error(w, "instance required", http.StatusBadRequest)
        return
    }
    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        return
    }
    defer func() { _ = conn.Close() }()

    ch := s.Broker.Subscribe(instance)
    defer s.Broker.Unsubscribe(instance, ch)

    // reader only detects close
    done := make(chan struct{})
    go func() {
        defer close(done)
        conn.SetReadLimit(1 << 16)
        for {
            if _, _, err := conn.ReadMessage(); err != nil {
                return
            }
        }
    }()

    ticker := time.NewTicker(20 * time.Second)
    defer ticker.Stop()
    for {
        select {
        case evt, ok := <-ch:
            if !ok {
                return
            }
            if err := conn.WriteJSON(evt); err != nil {
                return
            }
        case <-ticker.C:
            if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
                return
            }
        case <-done:
            return
        }
    }
}
