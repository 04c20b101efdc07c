// Package broadcast carries realtime events from the process that produced them
// to every process holding socket connections. Events are wrapped in an Envelope,
// published on a relay Bus, and handed to the local Sink by Forward.
package broadcast

import (
	"encoding/json"
	"fmt"
)

// Envelope is the relay wire format.
type Envelope struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
}

// Frame is what a socket client receives.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func encodeEnvelope(channel, event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Channel: channel, Event: event, Data: data})
}

func decodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, err
	}
	if env.Channel == "" || env.Event == "" {
		return Envelope{}, fmt.Errorf("envelope without channel or event")
	}
	return env, nil
}

// EncodeFrame renders the client-facing message for an event.
func EncodeFrame(event string, data json.RawMessage) ([]byte, error) {
	return json.Marshal(Frame{Event: event, Data: data})
}
