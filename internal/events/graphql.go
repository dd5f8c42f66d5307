package events

import "time"

// GraphQLStart is emitted before executing a GraphQL operation.
type GraphQLStart struct {
	Query         string
	OperationName string
	OperationType string
}

// StreamEmit is emitted for each result envelope a live operation produces.
// Sequence counts envelopes from 1 within the operation.
type StreamEmit struct {
	OperationName string
	Sequence      int
}

// GraphQLFinish is emitted after a GraphQL operation settles.
// Emissions is the number of result envelopes produced before the stream
// errored, completed, or was cancelled.
type GraphQLFinish struct {
	Query         string
	OperationName string
	OperationType string
	Emissions     int
	Errors        []error
	Duration      time.Duration
}
