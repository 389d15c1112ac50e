/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	"github.com/samber/lo"
)

// Conn is one connected client as seen by the router and dispatcher.
type Conn interface {
	ID() string
	// Send queues env for delivery. It must not block; false means the
	// message was dropped.
	Send(env Envelope) bool
}

// Router tracks every live connection and the rooms it has joined.
// Membership never outlives the connection: Remove drops it from all rooms.
type Router struct {
	conns map[Conn]struct{}
	rooms map[Room]map[Conn]struct{}
}

func NewRouter() *Router {
	return &Router{
		conns: make(map[Conn]struct{}),
		rooms: make(map[Room]map[Conn]struct{}),
	}
}

func (r *Router) Add(c Conn) {
	r.conns[c] = struct{}{}
}

func (r *Router) Remove(c Conn) {
	delete(r.conns, c)
	for room, members := range r.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
}

// Join is idempotent.
func (r *Router) Join(c Conn, room Room) {
	if _, ok := r.conns[c]; !ok {
		return
	}
	if r.rooms[room] == nil {
		r.rooms[room] = make(map[Conn]struct{})
	}
	r.rooms[room][c] = struct{}{}
}

// Leave is idempotent.
func (r *Router) Leave(c Conn, room Room) {
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

// Members returns every connection in any of rooms, each exactly once.
func (r *Router) Members(rooms ...Room) []Conn {
	var all []Conn
	for _, room := range lo.Uniq(rooms) {
		all = append(all, lo.Keys(r.rooms[room])...)
	}
	return lo.Uniq(all)
}

func (r *Router) Rooms(c Conn) []Room {
	return lo.Filter(lo.Keys(r.rooms), func(room Room, _ int) bool {
		_, ok := r.rooms[room][c]
		return ok
	})
}

func (r *Router) Count() int {
	return len(r.conns)
}

// Broadcast sends env to every member of rooms and returns the connections
// whose queue rejected it.
func (r *Router) Broadcast(rooms []Room, env Envelope) []Conn {
	return deliver(r.Members(rooms...), env)
}

// BroadcastExcept sends env to every live connection other than sender.
func (r *Router) BroadcastExcept(sender Conn, env Envelope) []Conn {
	others := lo.Filter(lo.Keys(r.conns), func(c Conn, _ int) bool {
		return c != sender
	})
	return deliver(others, env)
}

func deliver(targets []Conn, env Envelope) []Conn {
	var dropped []Conn
	for _, c := range targets {
		if !c.Send(env) {
			dropped = append(dropped, c)
		}
	}
	return dropped
}
