package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Stream is an open SSE connection to a Datastar client.
type Stream interface {
	Context
	Send(c Component, opts ...PatchOption) error
	Redirect(url string) error
}

type stream struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (s *stream) Send(c Component, opts ...PatchOption) error {
	return s.sse.PatchElementTempl(c, opts...)
}

func (s *stream) Redirect(url string) error {
	return s.sse.Redirect(url)
}

// StreamFunc runs for the lifetime of the connection.
type StreamFunc func(s Stream) error

// SSE keeps the connection open and runs fn. Non-Datastar requests get ErrNotDataStar.
func SSE(fn StreamFunc) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		if !IsDataStar(r) {
			return ErrNotDataStar
		}
		return fn(&stream{Context: NewContext(w, r), sse: datastar.NewSSE(w, r)})
	})
}
