package hub

import (
	"sort"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/eventhub/internal/logging"
)

// Handler is invoked once per delivered message. A non-nil error aborts the
// delivering call with a *HandlerError.
type Handler func(msg Message) error

// Message is what a Handler receives on delivery.
type Message struct {
	// Event is the event name the message was sent on.
	Event string
	// Listener is the ID of the listener being invoked.
	Listener string
	// Payload is the sender's payload, passed through untouched.
	Payload any
	// Meta is the metadata bound at registration via WithMeta, if any.
	Meta map[string]any
}

// entry is one registered (event, listener) pair.
type entry struct {
	listener string
	handler  Handler
	meta     map[string]any
	muted    bool
}

// eventState holds the listeners of a single event in registration order,
// plus the event-level mute flag.
type eventState struct {
	muted   bool
	entries []*entry
}

// index returns the position of the listener in the entry slice, or -1.
func (s *eventState) index(listener string) int {
	for i, e := range s.entries {
		if e.listener == listener {
			return i
		}
	}
	return -1
}

// Hub is an in-process publish/subscribe registry keyed by event name.
// It is not safe for concurrent use; callers serialize access.
type Hub struct {
	events map[string]*eventState
	log    zerolog.Logger
	pubsub *gochannel.GoChannel
}

// New creates an empty hub.
func New(opts ...Option) *Hub {
	h := &Hub{
		events: make(map[string]*eventState),
		log:    logging.Logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds a listener for an event, creating the event on first use.
// An empty listener ID gets a generated ULID. The effective ID is returned.
//
// Registering an ID that already exists on the event fails with
// *DuplicateListenerError unless WithOverwrite is given, in which case the
// prior entry is replaced in place and its mute flag reset.
func (h *Hub) Register(event, listener string, handler Handler, opts ...RegisterOption) (string, error) {
	if event == "" {
		return "", &InvalidArgumentError{Reason: "empty event name"}
	}
	if handler == nil {
		return "", &InvalidArgumentError{Reason: "nil handler"}
	}

	var cfg registerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if listener == "" {
		listener = ulid.Make().String()
	}
	e := &entry{listener: listener, handler: handler, meta: cfg.meta}

	st, ok := h.events[event]
	if !ok {
		h.events[event] = &eventState{entries: []*entry{e}}
		h.log.Debug().Str("event", event).Str("listener", listener).Msg("listener registered")
		return listener, nil
	}

	if i := st.index(listener); i >= 0 {
		if !cfg.overwrite {
			h.log.Warn().Str("event", event).Str("listener", listener).
				Msg("listener already registered, rejecting")
			return "", &DuplicateListenerError{Event: event, Listener: listener}
		}
		h.log.Warn().Str("event", event).Str("listener", listener).Msg("overwriting listener")
		st.entries[i] = e
		return listener, nil
	}

	st.entries = append(st.entries, e)
	h.log.Debug().Str("event", event).Str("listener", listener).Msg("listener registered")
	return listener, nil
}

// find returns the entry for (event, listener), or a *NotFoundError that
// names whichever of the two is missing.
func (h *Hub) find(event, listener string) (*entry, error) {
	st, ok := h.events[event]
	if !ok {
		return nil, &NotFoundError{Event: event}
	}
	i := st.index(listener)
	if i < 0 {
		return nil, &NotFoundError{Event: event, Listener: listener}
	}
	return st.entries[i], nil
}

// MuteListener suppresses delivery to one listener without removing it.
// Muting an already-muted listener is a no-op success.
func (h *Hub) MuteListener(event, listener string) error {
	e, err := h.find(event, listener)
	if err != nil {
		return err
	}
	e.muted = true
	return nil
}

// UnmuteListener restores delivery to one listener.
func (h *Hub) UnmuteListener(event, listener string) error {
	e, err := h.find(event, listener)
	if err != nil {
		return err
	}
	e.muted = false
	return nil
}

// DestroyListener removes exactly the (event, listener) entry. The event
// itself stays registered even when its last listener is destroyed; removing
// the event is always explicit via DestroyEvent.
func (h *Hub) DestroyListener(event, listener string) error {
	st, ok := h.events[event]
	if !ok {
		return &NotFoundError{Event: event}
	}
	i := st.index(listener)
	if i < 0 {
		return &NotFoundError{Event: event, Listener: listener}
	}
	st.entries = append(st.entries[:i], st.entries[i+1:]...)
	h.log.Debug().Str("event", event).Str("listener", listener).Msg("listener destroyed")
	return nil
}

// MuteEvent sets the event-level mute flag. While set, no listener of the
// event receives anything, including listeners registered afterwards.
// Individual listener flags are untouched.
func (h *Hub) MuteEvent(event string) error {
	st, ok := h.events[event]
	if !ok {
		return &NotFoundError{Event: event}
	}
	st.muted = true
	return nil
}

// UnmuteEvent clears the event-level mute flag. Each listener's own flag is
// preserved as previously set.
func (h *Hub) UnmuteEvent(event string) error {
	st, ok := h.events[event]
	if !ok {
		return &NotFoundError{Event: event}
	}
	st.muted = false
	return nil
}

// DestroyEvent removes the event and all its listeners. A second call for
// the same event fails with *NotFoundError.
func (h *Hub) DestroyEvent(event string) error {
	if _, ok := h.events[event]; !ok {
		return &NotFoundError{Event: event}
	}
	delete(h.events, event)
	h.log.Debug().Str("event", event).Msg("event destroyed")
	return nil
}

// Events returns the registered event names, sorted.
func (h *Hub) Events() []string {
	names := make([]string, 0, len(h.events))
	for name := range h.events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Listeners returns the listener IDs of an event in registration order.
func (h *Hub) Listeners(event string) ([]string, error) {
	st, ok := h.events[event]
	if !ok {
		return nil, &NotFoundError{Event: event}
	}
	ids := make([]string, len(st.entries))
	for i, e := range st.entries {
		ids[i] = e.listener
	}
	return ids, nil
}

// Len returns the number of registered events.
func (h *Hub) Len() int {
	return len(h.events)
}
