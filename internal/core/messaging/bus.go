package messaging

import (
	"github.com/google/uuid"

	"github.com/aethersim/aether/internal/core/observability/log"
	"github.com/aethersim/aether/pkg/sequence"
)

// DrainCap bounds how many queued normal-priority messages one Drain call
// delivers. A queue growing faster than this accumulates latency instead of
// stalling the tick.
const DrainCap = 10

type subscription struct {
	id      string
	code    string
	handler Handler
}

type delivery struct {
	msg     Message
	handler Handler
}

// Bus is the process message bus. It is owned by the engine context and is
// not safe for concurrent use; all posting and draining happens on the
// simulation goroutine.
type Bus struct {
	log      log.Log
	handlers map[string][]*subscription
	queue    *sequence.Queue[delivery]
}

func NewBus(logger log.Log) *Bus {
	return &Bus{
		log:      logger,
		handlers: make(map[string][]*subscription),
		queue:    sequence.NewQueue[delivery](),
	}
}

// Subscribe registers handler for code and returns the subscription id,
// usable with Cancel. Subscribing the same handler to the same code twice
// is logged and ignored, returning the existing id; the handler is
// delivered once per post either way.
func (b *Bus) Subscribe(code string, handler Handler) string {
	for _, s := range b.handlers[code] {
		if s.handler == handler {
			b.log.Warn("duplicate subscription ignored",
				log.String("code", code), log.String("subscription", s.id))
			return s.id
		}
	}
	sub := &subscription{
		id:      uuid.NewString(),
		code:    code,
		handler: handler,
	}
	b.handlers[code] = append(b.handlers[code], sub)
	return sub.id
}

// Cancel removes the subscription with the given id. Cancelling an id that
// was already removed is logged, like unsubscribing an unknown code.
func (b *Bus) Cancel(id string) {
	for _, subs := range b.handlers {
		for i, s := range subs {
			if s.id == id {
				b.handlers[s.code] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
	b.log.Warn("cancel of unknown subscription", log.String("subscription", id))
}

// Unsubscribe removes handler from code's list. An unknown code is logged;
// a known code without this particular handler is not.
func (b *Bus) Unsubscribe(code string, handler Handler) {
	subs, ok := b.handlers[code]
	if !ok {
		b.log.Warn("unsubscribe from unknown code", log.String("code", code))
		return
	}
	for i, s := range subs {
		if s.handler == handler {
			b.handlers[code] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Post delivers msg to every subscriber of msg.Code. Codes with no
// subscribers are not an error. High priority is delivered inline before
// Post returns, so a handler posting further high-priority messages recurses
// synchronously.
func (b *Bus) Post(msg Message) {
	subs, ok := b.handlers[msg.Code]
	if !ok {
		return
	}
	if msg.Priority == PriorityHigh {
		// Snapshot: handlers may subscribe/unsubscribe re-entrantly.
		snapshot := make([]*subscription, len(subs))
		copy(snapshot, subs)
		for _, s := range snapshot {
			s.handler.OnMessage(msg)
		}
		return
	}
	for _, s := range subs {
		b.queue.Enqueue(delivery{msg: msg, handler: s.handler})
	}
}

// Drain delivers up to DrainCap queued messages in FIFO order. The remainder
// stays queued for the next tick.
func (b *Bus) Drain() int {
	delivered := 0
	for delivered < DrainCap {
		d, ok := b.queue.Dequeue()
		if !ok {
			break
		}
		d.handler.OnMessage(d.msg)
		delivered++
	}
	return delivered
}

// Pending reports how many deliveries are still queued.
func (b *Bus) Pending() int {
	return b.queue.Len()
}
