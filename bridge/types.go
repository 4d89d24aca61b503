package bridge

import "encoding/json"

// Wire envelopes exchanged with the UI process over the IPC channel.

type InvokeFrame struct {
	ID      string          `json:"id"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args"`
}

type ResultFrame struct {
	ID     string        `json:"id"`
	Result any           `json:"result,omitempty"`
	Error  *ErrorPayload `json:"error,omitempty"`
}

type EventFrame struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
