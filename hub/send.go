package hub

// Whisper delivers the payload to one specific listener of an event. The
// returned bool reports whether delivery happened: a muted listener (or a
// muted event) is silent success, not an error. A missing event or listener
// fails with *NotFoundError; a handler error is wrapped in *HandlerError.
func (h *Hub) Whisper(event, listener string, payload any) (bool, error) {
	e, err := h.find(event, listener)
	if err != nil {
		return false, err
	}
	if h.events[event].muted || e.muted {
		h.log.Debug().Str("event", event).Str("listener", e.listener).
			Msg("whisper suppressed by mute")
		return false, nil
	}

	h.log.Debug().Str("event", event).Str("listener", e.listener).Msg("whisper")
	msg := Message{Event: event, Listener: e.listener, Payload: payload, Meta: e.meta}
	if err := e.handler(msg); err != nil {
		return false, &HandlerError{Event: event, Listener: e.listener, Err: err}
	}
	h.mirror(event, e.listener, payload)
	return true, nil
}

// Broadcast delivers the payload to every unmuted listener of an event in
// registration order and returns how many were notified. The event must
// exist, even with zero listeners; otherwise *NotFoundError. A muted event
// delivers to nobody and succeeds with 0.
//
// The delivery set is fixed when the call starts: handlers may register,
// mute, or destroy listeners mid-broadcast without affecting the in-flight
// iteration. Handler errors are fail-fast: the first failure is returned as
// a *HandlerError, remaining listeners are skipped, and the count of
// listeners already notified is still returned.
func (h *Hub) Broadcast(event string, payload any) (int, error) {
	st, ok := h.events[event]
	if !ok {
		return 0, &NotFoundError{Event: event}
	}
	if st.muted {
		h.log.Debug().Str("event", event).Msg("broadcast suppressed, event muted")
		return 0, nil
	}

	// Snapshot the unmuted listeners before invoking anything.
	targets := make([]*entry, 0, len(st.entries))
	for _, e := range st.entries {
		if !e.muted {
			targets = append(targets, e)
		}
	}

	notified := 0
	for _, e := range targets {
		msg := Message{Event: event, Listener: e.listener, Payload: payload, Meta: e.meta}
		if err := e.handler(msg); err != nil {
			return notified, &HandlerError{Event: event, Listener: e.listener, Err: err}
		}
		notified++
		h.mirror(event, e.listener, payload)
	}

	h.log.Debug().Str("event", event).Int("notified", notified).Msg("broadcast delivered")
	return notified, nil
}
