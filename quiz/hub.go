/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	"context"
)

type inboundRequest struct {
	client *Client
	msg    Inbound
}

type disconnect struct {
	client *Client
	reason string
}

// Hub owns the session and the router. Every connect, disconnect, inbound
// event and snapshot request passes through run, so each event is fully
// processed (broadcasts included) before the next one starts.
type Hub struct {
	dispatcher *Dispatcher
	clients    map[*Client]bool

	register chan *Client
	unreg    chan disconnect
	inbound  chan inboundRequest
	queries  chan chan State
	done     chan struct{}

	logf Logger
}

func NewHub(logf Logger) *Hub {
	if logf == nil {
		logf = nopLogger
	}
	return &Hub{
		dispatcher: NewDispatcher(NewSession(), NewRouter(), logf),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan disconnect),
		inbound:    make(chan inboundRequest),
		queries:    make(chan chan State),
		done:       make(chan struct{}),
		logf:       logf,
	}
}

// Run processes events until ctx is cancelled, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return nil

		case c := <-h.register:
			h.clients[c] = true
			h.dispatcher.Connect(c)

		case d := <-h.unreg:
			if _, ok := h.clients[d.client]; ok {
				delete(h.clients, d.client)
				close(d.client.send)
				h.dispatcher.Disconnect(d.client, d.reason)
			}

		case r := <-h.inbound:
			if _, ok := h.clients[r.client]; !ok {
				continue
			}
			h.dispatcher.Handle(r.client, r.msg)

		case reply := <-h.queries:
			reply <- h.snapshot()
		}
	}
}

// Snapshot returns a copy of the current session state.
func (h *Hub) Snapshot(ctx context.Context) (State, error) {
	reply := make(chan State, 1)

	select {
	case h.queries <- reply:
	case <-h.done:
		return State{}, context.Canceled
	case <-ctx.Done():
		return State{}, ctx.Err()
	}

	select {
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

func (h *Hub) snapshot() State {
	router := h.dispatcher.Router()

	st := h.dispatcher.Session().Snapshot()
	st.Connections = router.Count()
	st.Rooms = make(map[Room]int, 3)
	for _, room := range []Room{RoomBeamer, RoomReferent, RoomReferentControl} {
		st.Rooms[room] = len(router.Members(room))
	}
	return st
}

// submit hands work to the run loop unless the hub has already stopped.
func submit[T any](h *Hub, ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) closeAll() {
	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
		h.dispatcher.Disconnect(c, "server shutting down")
	}
}
