// Package message defines the message exchanged between client and server.
//
// A Message is the "envelope" for every call. On a request, Operation names the
// handler to run and Payload carries the serialized arguments. On a response,
// Operation carries the status token and Payload carries either the serialized
// result or a human-readable error description.
package message

import (
	"strings"

	"github.com/juju/errors"
)

// Status tokens carried in the first line of a response.
const (
	StatusOK    = "200 OK"
	StatusError = "400 Error"
)

// ErrUnknownStatus is returned by ResultOf when a response's first line starts
// with neither status token.
const ErrUnknownStatus = errors.ConstError("unknown response status")

// Message carries the data for a single request or response.
//
//   - On request:  Operation is the handler name, Payload the serialized args.
//   - On response: Operation is StatusOK or StatusError, Payload the result or error text.
type Message struct {
	Operation string // Handler name (request) or status token (response)
	Payload   string // Delimiter-serialized body, may be empty
}

// NewRequest builds a request for the named operation.
func NewRequest(operation, payload string) *Message {
	return &Message{Operation: operation, Payload: payload}
}

// NewOK builds a success response carrying payload.
func NewOK(payload string) *Message {
	return &Message{Operation: StatusOK, Payload: payload}
}

// NewError builds an error response carrying a human-readable description.
func NewError(description string) *Message {
	return &Message{Operation: StatusError, Payload: description}
}

func (m *Message) String() string {
	return "Message{operation=" + m.Operation + ", payload=" + m.Payload + "}"
}

// Result is the outcome of a call: either Ok with a payload or Err with a
// description. It is the typed view of a response's status token.
type Result struct {
	ok    bool
	value string
}

// Ok returns a successful Result.
func Ok(payload string) Result {
	return Result{ok: true, value: payload}
}

// Err returns a failed Result.
func Err(description string) Result {
	return Result{value: description}
}

// IsOk reports whether the call succeeded.
func (r Result) IsOk() bool { return r.ok }

// Value returns the payload on success or the error description on failure.
func (r Result) Value() string { return r.value }

// Message serializes the Result as a response message.
func (r Result) Message() *Message {
	if r.ok {
		return NewOK(r.value)
	}
	return NewError(r.value)
}

// ResultOf classifies a response by the prefix of its status token.
// "200..." is success and "400..." is failure; anything else is an error.
func ResultOf(resp *Message) (Result, error) {
	if resp == nil {
		return Result{}, errors.Annotate(ErrUnknownStatus, "nil response")
	}
	switch {
	case strings.HasPrefix(resp.Operation, "200"):
		return Ok(resp.Payload), nil
	case strings.HasPrefix(resp.Operation, "400"):
		return Err(resp.Payload), nil
	}
	return Result{}, errors.Annotatef(ErrUnknownStatus, "status %q", resp.Operation)
}
