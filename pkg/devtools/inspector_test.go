package devtools

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vstore/pkg/store"
	"github.com/vango-dev/vstore/pkg/telemetry"
)

func newTestInspector(t *testing.T, opts ...Option) (*Inspector, *store.Store[store.Record], *httptest.Server) {
	t.Helper()

	s := store.New(store.Record{"count": 0})
	insp := NewInspector(opts...)
	if err := Expose(insp, "counter", s); err != nil {
		t.Fatalf("Expose: %v", err)
	}

	srv := httptest.NewServer(insp.Handler())
	t.Cleanup(func() {
		insp.Close()
		srv.Close()
	})
	return insp, s, srv
}

func TestExposeErrors(t *testing.T) {
	insp := NewInspector()
	s := store.New(1)

	if err := Expose(insp, "", s); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: err = %v, want ErrEmptyName", err)
	}
	if err := Expose(insp, "a", s); err != nil {
		t.Fatalf("Expose: %v", err)
	}
	if err := Expose(insp, "a", s); !errors.Is(err, ErrDuplicateStore) {
		t.Errorf("duplicate: err = %v, want ErrDuplicateStore", err)
	}

	insp.Close()
	if err := Expose(insp, "b", s); !errors.Is(err, ErrClosed) {
		t.Errorf("closed: err = %v, want ErrClosed", err)
	}
}

func TestListStores(t *testing.T) {
	insp, s, srv := newTestInspector(t)
	if err := Expose(insp, "another", store.New("x")); err != nil {
		t.Fatalf("Expose: %v", err)
	}
	s.Listen(func(store.Record) {})

	resp, err := http.Get(srv.URL + "/stores")
	if err != nil {
		t.Fatalf("GET /stores: %v", err)
	}
	defer resp.Body.Close()

	var infos []StoreInfo
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(infos) != 2 || infos[0].Name != "another" || infos[1].Name != "counter" {
		t.Fatalf("infos = %+v", infos)
	}
	if infos[1].Listeners != 1 {
		t.Errorf("counter listeners = %d, want 1", infos[1].Listeners)
	}
}

func TestSnapshotRoute(t *testing.T) {
	_, s, srv := newTestInspector(t)
	s.Set(store.Record{"count": 3})

	resp, err := http.Get(srv.URL + "/stores/counter")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var f Frame
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Store != "counter" || string(f.State) != `{"count":3}` {
		t.Errorf("frame = %+v state=%s", f, f.State)
	}
}

func TestSnapshotNotFound(t *testing.T) {
	_, _, srv := newTestInspector(t)

	for _, path := range []string{"/stores/missing", "/stores/missing/ws"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestUnencodableState(t *testing.T) {
	insp := NewInspector()
	if err := Expose(insp, "ch", store.New(make(chan int))); err != nil {
		t.Fatalf("Expose: %v", err)
	}

	f, err := insp.Snapshot("ch")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if f.Error == "" || f.State != nil {
		t.Errorf("expected an error frame, got %+v", f)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return f
}

func TestWebSocketStream(t *testing.T) {
	insp, s, srv := newTestInspector(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stores/counter/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	first := readFrame(t, conn)
	if string(first.State) != `{"count":0}` {
		t.Errorf("first state = %s", first.State)
	}

	s.Set(store.Record{"count": 1})
	second := readFrame(t, conn)
	if string(second.State) != `{"count":1}` {
		t.Errorf("second state = %s", second.State)
	}
	if second.Seq <= first.Seq {
		t.Errorf("seq did not increase: %d then %d", first.Seq, second.Seq)
	}
	if insp.ClientCount() != 1 {
		t.Errorf("ClientCount = %d, want 1", insp.ClientCount())
	}

	// A notification without a change sends nothing; the next frame is
	// the following real change.
	s.Notify()
	s.Set(store.Record{"count": 2})
	third := readFrame(t, conn)
	if string(third.State) != `{"count":2}` {
		t.Errorf("third state = %s", third.State)
	}
}

func TestCloseDisconnectsClients(t *testing.T) {
	insp, s, srv := newTestInspector(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stores/counter/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	readFrame(t, conn)

	insp.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected connection to be closed")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Len() != 0 {
		t.Errorf("store listeners = %d after Close, want 0", s.Len())
	}
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := telemetry.Prometheus(telemetry.WithRegistry(reg))

	s := store.New(store.Record{}, store.WithName("todos"), store.WithObserver(metrics))
	insp := NewInspector(WithGatherer(reg), WithLogger(nil))
	if err := Expose(insp, "todos", s); err != nil {
		t.Fatalf("Expose: %v", err)
	}
	s.Set(store.Record{"a": 1})

	srv := httptest.NewServer(insp.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `vstore_dispatch_total{outcome="merged",store="todos"} 1`) {
		t.Errorf("metrics output missing dispatch counter:\n%s", body)
	}
}

func TestMetricsRouteAbsentWithoutGatherer(t *testing.T) {
	_, _, srv := newTestInspector(t)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
