package events

import (
	"net/http"
	"time"
)

// HTTPStart is emitted when a request reaches the GraphQL endpoint.
// The publishing context carries the request ID used for span correlation.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish is emitted once the endpoint has written its response.
type HTTPFinish struct {
	Request  *http.Request
	Status   int
	Duration time.Duration
}
