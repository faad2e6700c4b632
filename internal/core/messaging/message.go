// Package messaging implements the priority publish/subscribe bus that
// decouples the simulation subsystems from each other.
//
// High-priority messages are delivered synchronously at post time, in the
// caller goroutine, before Post returns. Normal-priority messages are
// enqueued onto a single global FIFO queue and delivered by Drain, at most
// DrainCap per tick.
package messaging

type Priority uint8

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

// Message is an ephemeral envelope: created per post, never retained after
// delivery. Context is an opaque payload for handlers.
type Message struct {
	Code     string
	Sender   any
	Context  any
	Priority Priority
}

// Handler receives delivered messages. Handlers are compared by interface
// identity for duplicate-subscription detection, so they must be comparable
// (pointer receivers are the normal choice).
type Handler interface {
	OnMessage(msg Message)
}
