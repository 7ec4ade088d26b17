package hub

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
)

// Option configures a Hub at construction time.
type Option func(*Hub)

// WithLogger sets the logger the hub emits debug and warning lines on.
// Defaults to the package-wide logger from internal/logging, which discards
// everything until initialized.
func WithLogger(log zerolog.Logger) Option {
	return func(h *Hub) {
		h.log = log
	}
}

// WithMirror attaches a watermill gochannel to the hub. Every successful
// delivery is re-published to the topic named after the event as a JSON
// envelope; see PubSub.
func WithMirror() Option {
	return func(h *Hub) {
		h.pubsub = gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer: 100,
				Persistent:          false,
			},
			watermill.NopLogger{},
		)
	}
}

// registerConfig collects per-registration options.
type registerConfig struct {
	overwrite bool
	meta      map[string]any
}

// RegisterOption configures a single Register call.
type RegisterOption func(*registerConfig)

// WithOverwrite replaces an existing entry for the same (event, listener)
// pair instead of failing with *DuplicateListenerError. The replacement
// keeps the entry's position in delivery order and starts unmuted.
func WithOverwrite() RegisterOption {
	return func(c *registerConfig) {
		c.overwrite = true
	}
}

// WithMeta binds metadata to the listener. It is passed to the handler in
// Message.Meta on every delivery.
func WithMeta(meta map[string]any) RegisterOption {
	return func(c *registerConfig) {
		c.meta = meta
	}
}
