// Package stream serves composed frames to websocket viewers and accepts
// their commands and drags into the engine input queue.
package stream

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/orrery/core"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/mesh"
	"github.com/lixenwraith/orrery/metrics"
	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/scene"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBuffer     = 4
)

var (
	errUnknownAction   = errors.New("unknown action")
	errUnknownPhase    = errors.New("unknown pointer phase")
	errInvalidViewport = errors.New("pointer viewport must be positive")
)

// Source provides the latest frame and the queue client input is pushed to
// *engine.Engine satisfies it
type Source interface {
	Latest() (scene.Frame, bool)
	Queue() *input.Queue
}

// Options configures a hub; Source and Catalog are required
type Options struct {
	Source         Source
	Catalog        *orbit.Catalog
	Metrics        *metrics.Collector
	Logger         *log.Logger
	MaxFPS         float64 // Per-client frame rate cap
	Burst          int
	AllowedOrigins []string // Empty allows any origin
}

// Hub fans frames out to connected clients
// Consume is called on the tick goroutine and never blocks on a client
type Hub struct {
	source  Source
	metrics *metrics.Collector
	logger  *log.Logger
	limit   rate.Limit
	burst   int
	hello   []byte

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

type outbound struct {
	data  []byte
	frame bool
}

type client struct {
	conn      *websocket.Conn
	send      chan outbound
	limiter   *rate.Limiter
	done      chan struct{}
	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// NewHub prepares the hello message once for all clients
func NewHub(opts Options) (*Hub, error) {
	if opts.Source == nil || opts.Catalog == nil {
		return nil, errors.New("stream: source and catalog are required")
	}
	if opts.MaxFPS <= 0 {
		opts.MaxFPS = 30
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	h := &Hub{
		source:  opts.Source,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		limit:   rate.Limit(opts.MaxFPS),
		burst:   opts.Burst,
		clients: make(map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}

	bodies := opts.Catalog.Bodies()
	names := make([]string, len(bodies))
	for i, b := range bodies {
		names[i] = b.Name
	}
	hello, err := json.Marshal(ServerMessage{
		Type: TypeHello,
		Hello: &Hello{
			Bodies:     names,
			CircleStep: mesh.DefaultCircleStep,
			Circle:     mesh.Circle(mesh.DefaultCircleStep),
			Sphere:     mesh.NewSphere(mesh.DefaultBands, mesh.DefaultBands),
			Actions:    input.CommandNames(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "stream: encode hello")
	}
	h.hello = hello
	return h, nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Handler routes /ws, /frame and /metrics
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/frame", h.serveFrame)
	mux.Handle("/metrics", h.metrics.Handler())
	return mux
}

// Clients returns the number of connected viewers
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Consume encodes f once and offers it to every client within its rate
func (h *Hub) Consume(f scene.Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.clients) == 0 {
		return
	}

	data, err := json.Marshal(ServerMessage{Type: TypeFrame, Frame: &f})
	if err != nil {
		h.logger.Printf("[STREAM] encode frame %d: %v", f.Seq, err)
		return
	}

	for c := range h.clients {
		if !c.limiter.Allow() {
			h.metrics.RecordFrameDropped()
			continue
		}
		select {
		case c.send <- outbound{data: data, frame: true}:
		default:
			h.metrics.RecordFrameDropped()
		}
	}
}

// Close disconnects every client and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
	h.metrics.SetStreamClients(0)
}

// ServeWS upgrades the request and runs the client until it disconnects
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("[STREAM] upgrade failed: %v", err)
		return
	}

	c := &client{
		conn:    conn,
		send:    make(chan outbound, sendBuffer),
		limiter: rate.NewLimiter(h.limit, h.burst),
		done:    make(chan struct{}),
	}

	// Registered before hello so no frame after hello is missed
	if !h.register(c) {
		conn.Close()
		return
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, h.hello); err != nil {
		h.logger.Printf("[STREAM] hello to %s: %v", conn.RemoteAddr(), err)
		h.unregister(c)
		return
	}
	h.logger.Printf("[STREAM] client connected: %s", conn.RemoteAddr())

	core.Go(func() { h.writePump(c) })
	h.readPump(c)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.metrics.SetStreamClients(len(h.clients))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		h.metrics.SetStreamClients(len(h.clients))
	}
	h.mu.Unlock()
	c.close()
}

// readPump pushes client messages into the input queue until the connection ends
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	queue := h.source.Queue()
	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("[STREAM] read from %s: %v", c.conn.RemoteAddr(), err)
			}
			return
		}

		ev, err := msg.Event()
		if err != nil {
			h.reject(c, err)
			continue
		}
		queue.Push(ev)
	}
}

// reject reports a bad message without blocking the reader
func (h *Hub) reject(c *client, cause error) {
	data, err := json.Marshal(ServerMessage{Type: TypeError, Error: cause.Error()})
	if err != nil {
		return
	}
	select {
	case c.send <- outbound{data: data}:
	default:
	}
}

// writePump is the only writer after hello
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
				return
			}
			if msg.frame {
				h.metrics.RecordFrameSent()
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// serveFrame writes the latest frame as JSON
func (h *Hub) serveFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f, ok := h.source.Latest()
	if !ok {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		h.logger.Printf("[STREAM] write frame: %v", err)
	}
}
