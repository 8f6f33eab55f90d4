// Package presence tracks who is currently active in a room, an event,
// or the application as a whole. Sessions announce themselves with
// periodic heartbeats and expire from Redis when the heartbeats stop.
package presence

import (
	"fmt"

	"github.com/google/uuid"
)

type ContextType string

const (
	ContextRoom   ContextType = "room"
	ContextEvent  ContextType = "event"
	ContextGlobal ContextType = "global"
)

// Context is the scope over which presence is aggregated.
// Exactly one variant applies: room, event or global.
type Context struct {
	Type    ContextType `json:"type"`
	RoomID  uuid.UUID   `json:"roomId,omitempty"`
	EventID uuid.UUID   `json:"eventId,omitempty"`
}

// RouteParams are the route parameters a client derives its context from.
type RouteParams struct {
	RoomID  string
	EventID string
}

// DeriveContext maps route parameters to a presence context.
// A room id takes precedence over an event id, which takes precedence
// over the global fallback. Unparseable ids are treated as absent.
func DeriveContext(params RouteParams) Context {
	if params.RoomID != "" {
		if roomID, err := uuid.Parse(params.RoomID); err == nil {
			return Context{Type: ContextRoom, RoomID: roomID}
		}
	}
	if params.EventID != "" {
		if eventID, err := uuid.Parse(params.EventID); err == nil {
			return Context{Type: ContextEvent, EventID: eventID}
		}
	}
	return Context{Type: ContextGlobal}
}

// RoomContext builds a room-scoped context
func RoomContext(roomID uuid.UUID) Context {
	return Context{Type: ContextRoom, RoomID: roomID}
}

// EventContext builds an event-scoped context
func EventContext(eventID uuid.UUID) Context {
	return Context{Type: ContextEvent, EventID: eventID}
}

// GlobalContext builds the application-wide context
func GlobalContext() Context {
	return Context{Type: ContextGlobal}
}

// Key returns the Redis key fragment for this context
func (c Context) Key() string {
	switch c.Type {
	case ContextRoom:
		return fmt.Sprintf("room:%s", c.RoomID)
	case ContextEvent:
		return fmt.Sprintf("event:%s", c.EventID)
	default:
		return "global"
	}
}
