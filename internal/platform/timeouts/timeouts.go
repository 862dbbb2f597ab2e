// Package timeouts defines shared timeout constants used across the service.
// Centralizing these values prevents drift between components and makes the
// durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// SessionIdle is how long a reveal session may go without receiving events
// before the sweeper disposes it.
const SessionIdle = 10 * time.Minute

// SessionSweep is the interval between idle-session sweeps.
const SessionSweep = time.Minute

// StreamHeartbeat is the interval between keep-alive comments on the
// progress SSE stream.
const StreamHeartbeat = 15 * time.Second
