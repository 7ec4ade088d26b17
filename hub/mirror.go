package hub

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// envelope is the JSON shape of mirrored deliveries.
type envelope struct {
	Event    string `json:"event"`
	Listener string `json:"listener"`
	Payload  any    `json:"payload,omitempty"`
}

// mirror re-publishes a delivered message on the watermill topic named after
// the event. The mirror is observational: the in-process delivery has
// already happened, so failures are logged and swallowed.
func (h *Hub) mirror(event, listener string, payload any) {
	if h.pubsub == nil {
		return
	}
	body, err := json.Marshal(envelope{Event: event, Listener: listener, Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("mirror marshal failed")
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := h.pubsub.Publish(event, msg); err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("mirror publish failed")
	}
}

// PubSub returns the underlying watermill GoChannel, or nil when the hub was
// built without WithMirror. It can be used for middleware, routing, or when
// moving to a distributed backend later.
func (h *Hub) PubSub() *gochannel.GoChannel {
	return h.pubsub
}

// Close shuts down the watermill mirror, if any. The registry itself needs
// no teardown.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}
