package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownEvent = errors.New("unknown event")
var ErrMalformedPayload = errors.New("malformed payload")
var ErrInvalidPayload = errors.New("invalid payload")

// Decode turns an envelope into its typed variant. Anything that does not
// pass validation is rejected here so handlers never see partial payloads.
func Decode(env Envelope) (Inbound, error) {
	switch env.Event {
	case EventUpdate:
		var ev UpdateEvent
		if err := unmarshal(env, &ev); err != nil {
			return nil, err
		}
		if ev.Scores == nil {
			return nil, fmt.Errorf("%s: missing scores: %w", env.Event, ErrInvalidPayload)
		}
		return ev, nil

	case EventGameOver:
		var ev GameOverEvent
		if err := unmarshal(env, &ev); err != nil {
			return nil, err
		}
		if ev.Winner == "" {
			return nil, fmt.Errorf("%s: missing winner: %w", env.Event, ErrInvalidPayload)
		}
		return ev, nil

	case EventMessage:
		var ev ChatMessage
		if err := unmarshal(env, &ev); err != nil {
			return nil, err
		}
		if ev.User == "" {
			return nil, fmt.Errorf("%s: missing user: %w", env.Event, ErrInvalidPayload)
		}
		return ev, nil

	case EventProposal, EventProposalRequest, EventDeletionRequest, EventDeletionProposal:
		var ev ProposalEvent
		if err := unmarshal(env, &ev); err != nil {
			return nil, err
		}
		if ev.Pid == "" {
			return nil, fmt.Errorf("%s: missing pid: %w", env.Event, ErrInvalidPayload)
		}
		ev.Kind = env.Event
		return ev, nil

	default:
		return nil, fmt.Errorf("%q: %w", env.Event, ErrUnknownEvent)
	}
}

func unmarshal(env Envelope, v any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%s: empty data: %w", env.Event, ErrMalformedPayload)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%s: %v: %w", env.Event, err, ErrMalformedPayload)
	}
	return nil
}

// NewEnvelope marshals payload into an envelope for event.
func NewEnvelope(event string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s: %w", event, err)
	}
	return Envelope{Event: event, Data: data}, nil
}
