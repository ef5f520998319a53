// relay/relay.go
package relay

import (
	"context"

	"buttoncode-go/bus"
	"buttoncode-go/event"
)

// ButtonEvent is the bus payload for one cooked button event.
type ButtonEvent struct {
	Line  uint8
	Param uint32
}

// Publisher forwards cooked button events onto the bus, one topic per
// event tag: input/button/<name>/event/<sig>. It satisfies
// button.Handler, so it plugs straight into a classifier config.
type Publisher struct {
	conn *bus.Connection
	name string
}

func NewPublisher(conn *bus.Connection, name string) *Publisher {
	return &Publisher{conn: conn, name: name}
}

func (p *Publisher) OnButtonEvent(line uint8, sig event.Signal, param uint32) {
	p.conn.Publish(p.conn.NewMessage(
		bus.T("input", "button", p.name, "event", sig.String()),
		ButtonEvent{Line: line, Param: param},
		false,
	))
}

// EventTopic is the wildcard pattern matching every cooked event for
// the named button.
func EventTopic(name string) bus.Topic {
	return bus.T("input", "button", name, "event", "+")
}

// Poster is anything with a bounded inbox accepting generic events:
// an LED, another classifier, a test double.
type Poster interface {
	Post(ev event.Event) bool
}

// Bridge drains one bus subscription into an active object's inbox.
// Payloads that are not events are ignored; a full inbox drops, as at
// any producer boundary.
type Bridge struct {
	sub *bus.Subscription
	dst Poster
}

func NewBridge(conn *bus.Connection, topic bus.Topic, dst Poster) *Bridge {
	return &Bridge{sub: conn.Subscribe(topic), dst: dst}
}

// Run starts the forwarding goroutine; it exits on ctx cancellation.
func (b *Bridge) Run(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-b.sub.Channel():
				if !ok {
					return
				}
				if ev, ok := m.Payload.(event.Event); ok {
					_ = b.dst.Post(ev)
				}
			}
		}
	}()
}
