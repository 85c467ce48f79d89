// Package httpserver builds the process http.Server from config.
package httpserver

import (
	"net/http"
	"time"
)

// Timeouts bounds request handling. Zero fields fall back to defaults sized
// for the case-management front ends, which submit small JSON bodies.
type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

func (t Timeouts) withDefaults() Timeouts {
	if t.ReadHeader == 0 {
		t.ReadHeader = 5 * time.Second
	}
	if t.Read == 0 {
		t.Read = 15 * time.Second
	}
	if t.Write == 0 {
		t.Write = 30 * time.Second
	}
	if t.Idle == 0 {
		t.Idle = 60 * time.Second
	}
	return t
}

// New builds an HTTP server bound to addr with the given timeouts.
func New(addr string, handler http.Handler, timeouts Timeouts) *http.Server {
	timeouts = timeouts.withDefaults()
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
		ReadTimeout:       timeouts.Read,
		WriteTimeout:      timeouts.Write,
		IdleTimeout:       timeouts.Idle,
	}
}
