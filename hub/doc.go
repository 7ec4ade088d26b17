/*
Package hub provides an in-process publish/subscribe hub keyed by named events.

A Hub maps event names to registered listeners. Each listener has a string ID,
a handler, and a mute flag; each event additionally carries its own mute flag.
Payloads are delivered either to every unmuted listener of an event (Broadcast)
or to one specific listener (Whisper). Muting suppresses delivery without
removing the registration.

# Basic Usage

	h := hub.New()

	id, err := h.Register("tick", "clock-ui", func(msg hub.Message) error {
		fmt.Println("tick:", msg.Payload)
		return nil
	})
	if err != nil {
		return err
	}

	notified, err := h.Broadcast("tick", map[string]int{"n": 1})

	delivered, err := h.Whisper("tick", id, "just for you")

Registering with an empty listener ID assigns a generated ULID; Register returns
the effective ID so it can be used for later mute/destroy calls.

# Mute Semantics

MuteListener and UnmuteListener toggle a single listener's flag. MuteEvent sets
a separate event-level flag: while it is set, no listener of that event receives
anything, including listeners registered after the call. UnmuteEvent clears only
the event-level flag; each listener's own flag is preserved. A muted delivery is
silent success, not an error.

# Errors

Operations that reference a missing event or listener return *NotFoundError.
Malformed registration (empty event name, nil handler) returns
*InvalidArgumentError. Registering an already-registered (event, listener) pair
returns *DuplicateListenerError unless WithOverwrite is given. A handler that
returns an error aborts the delivery with a *HandlerError wrapping it; Broadcast
is fail-fast and skips the remaining listeners.

# Concurrency

A Hub is not safe for concurrent use; callers serialize access. All delivery is
synchronous on the caller's goroutine. Broadcast iterates over a snapshot of the
listener list taken when the call starts, so handlers may register or destroy
listeners mid-broadcast without affecting the in-flight delivery set.

# Watermill Mirror

New(WithMirror()) attaches a watermill gochannel. Every successful delivery is
re-published to the topic named after the event as a JSON envelope, and PubSub
exposes the channel for middleware, routing, or a later move to a distributed
backend. The mirror is observational: its failures are logged, never returned.
*/
package hub
