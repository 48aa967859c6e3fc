package layout

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// BroadcastHook fans layout change events out to in-process subscribers.
// Every event carries the full layout, so delivery coalesces: a slow
// subscriber skips intermediate states and converges on the newest one.
// The hook is advisory only; two tabs on the same slot still race with
// last-write-wins persistence.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan LayoutEvent
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{subs: make(map[int]chan LayoutEvent)}
}

// LayoutChanged satisfies the ChangeHook interface. A mutation never
// blocks on a subscriber: when a subscriber has not drained the previous
// event yet, that stale event is replaced by this one.
func (h *BroadcastHook) LayoutChanged(_ context.Context, event LayoutEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel holding the most recent undelivered layout
// event and a cancel func. Cancel closes the channel.
func (h *BroadcastHook) Subscribe() (<-chan LayoutEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan LayoutEvent, 1)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams layout events as JSON.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for layout changes.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
