package devtools

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vstore/pkg/binding"
	"github.com/vango-dev/vstore/pkg/store"
)

// exposed is a type-erased view of an exposed store.
type exposed struct {
	name      string
	src       binding.ExternalStore[any]
	listeners func() int
	seq       atomic.Uint64
}

func (e *exposed) frame(state any) Frame {
	return newFrame(e.name, e.seq.Add(1), state)
}

// anyBinding erases the slice type of a binding.
type anyBinding[T any] struct {
	b *binding.Binding[T, T]
}

func (a anyBinding[T]) Subscribe(onChange func()) func() {
	return a.b.Subscribe(onChange)
}

func (a anyBinding[T]) Snapshot() any {
	return a.b.Snapshot()
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// WithGatherer serves gatherer on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(i *Inspector) {
		i.gatherer = g
	}
}

// WithCheckOrigin sets the websocket origin check. The default allows all
// origins, which is only appropriate on loopback addresses.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(i *Inspector) {
		i.upgrader.CheckOrigin = check
	}
}

// Inspector serves read-only views of named stores.
type Inspector struct {
	mu      sync.RWMutex
	stores  map[string]*exposed
	clients map[*client]bool
	closed  bool

	upgrader websocket.Upgrader
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// NewInspector creates an inspector with no stores.
func NewInspector(opts ...Option) *Inspector {
	i := &Inspector{
		stores:  make(map[string]*exposed),
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}
	return i
}

// Expose registers s under name.
func Expose[T any](i *Inspector, name string, s *store.Store[T]) error {
	if name == "" {
		return ErrEmptyName
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return ErrClosed
	}
	if _, ok := i.stores[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateStore, name)
	}
	i.stores[name] = &exposed{
		name:      name,
		src:       anyBinding[T]{b: binding.Full(s)},
		listeners: s.Len,
	}
	return nil
}

// Stores lists exposed stores sorted by name.
func (i *Inspector) Stores() []StoreInfo {
	i.mu.RLock()
	defer i.mu.RUnlock()

	infos := make([]StoreInfo, 0, len(i.stores))
	for name, e := range i.stores {
		infos = append(infos, StoreInfo{Name: name, Listeners: e.listeners()})
	}
	sort.Slice(infos, func(a, b int) bool { return infos[a].Name < infos[b].Name })
	return infos
}

// Snapshot returns the current state of the named store as a Frame.
func (i *Inspector) Snapshot(name string) (Frame, error) {
	e, err := i.lookup(name)
	if err != nil {
		return Frame{}, err
	}
	return e.frame(e.src.Snapshot()), nil
}

func (i *Inspector) lookup(name string) (*exposed, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	e, ok := i.stores[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStoreNotFound, name)
	}
	return e, nil
}

// Handler returns the inspector routes.
func (i *Inspector) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/stores", i.handleList)
	r.Get("/stores/{name}", i.handleSnapshot)
	r.Get("/stores/{name}/ws", i.handleWebSocket)
	if i.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(i.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (i *Inspector) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, i.Stores())
}

func (i *Inspector) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	frame, err := i.Snapshot(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (i *Inspector) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	e, err := i.lookup(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	conn, err := i.upgrader.Upgrade(w, r, nil)
	if err != nil {
		i.logger.Warn("devtools websocket upgrade failed", "store", name, "error", err)
		return
	}

	c := newClient(conn)
	if !i.addClient(c) {
		c.close()
		return
	}
	logger := i.logger.With("store", name, "remote", r.RemoteAddr)
	logger.Debug("devtools client connected")

	watcher := stream(c, e)

	go c.writeLoop(logger)
	c.readLoop()

	watcher.Stop()
	i.removeClient(c)
	c.close()
	logger.Debug("devtools client disconnected")
}

// stream queues the current state for c, then every later change. The
// first frame is queued before the watcher exists so that a change racing
// the subscription is queued after it and wins.
func stream(c *client, e *exposed) *binding.Watcher[any] {
	c.queue(e.frame(e.src.Snapshot()))
	return binding.Watch(e.src, func(state any) {
		c.queue(e.frame(state))
	})
}

func (i *Inspector) addClient(c *client) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return false
	}
	i.clients[c] = true
	return true
}

func (i *Inspector) removeClient(c *client) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.clients, c)
}

// ClientCount returns the number of connected websocket clients.
func (i *Inspector) ClientCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.clients)
}

// Close disconnects every websocket client. Exposed stores are left
// untouched; their watchers are stopped as the connections unwind.
func (i *Inspector) Close() {
	i.mu.Lock()
	i.closed = true
	clients := make([]*client, 0, len(i.clients))
	for c := range i.clients {
		clients = append(clients, c)
		delete(i.clients, c)
	}
	i.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
