// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func expectOneOf(t *testing.T, s *Subscription, want string) {
	t.Helper()
	select {
	case got := <-s.Channel():
		if got.Payload.(string) != want {
			t.Errorf("expected payload %q, got %v", want, got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func expectNoMessage(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case got := <-s.Channel():
		t.Fatalf("unexpected message %v on %v", got.Payload, s.Topic())
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(T("input", "button", "user"))
	conn.Publish(conn.NewMessage(T("input", "button", "user"), "hello", false))

	expectOneOf(t, sub, "hello")
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(T("io", "led", "state"), "persist", true))
	sub := conn.Subscribe(T("io", "led", "state"))

	expectOneOf(t, sub, "persist")

	// nil payload clears the retained copy.
	conn.Publish(conn.NewMessage(T("io", "led", "state"), nil, true))
	late := conn.Subscribe(T("io", "led", "state"))
	expectNoMessage(t, late)
}

func TestWildcard_SingleLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	s1 := c.Subscribe(T("a", "+", "c"))
	s2 := c.Subscribe(T("a", "+", "+"))
	s3 := c.Subscribe(T("a", "b", "+"))
	sNo := c.Subscribe(T("a", "+", "d"))

	c.Publish(b.NewMessage(T("a", "b", "c"), "m1", false))
	expectOneOf(t, s1, "m1")
	expectOneOf(t, s2, "m1")
	expectOneOf(t, s3, "m1")
	expectNoMessage(t, sNo)

	c.Publish(b.NewMessage(T("a", "x", "y"), "m2", false))
	expectOneOf(t, s2, "m2")
	expectNoMessage(t, s1)
	expectNoMessage(t, s3)

	c.Publish(b.NewMessage(T("a", "c"), "m3", false))
	expectNoMessage(t, s1)
	expectNoMessage(t, s2)
	expectNoMessage(t, s3)
	expectNoMessage(t, sNo)
}

func TestWildcard_MultiLevel(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	sAHash := c.Subscribe(T("a", "#"))
	sHash := c.Subscribe(T("#"))
	sABHash := c.Subscribe(T("a", "b", "#"))
	sAExact := c.Subscribe(T("a"))

	c.Publish(b.NewMessage(T("a"), "p1", false))
	expectOneOf(t, sAHash, "p1")
	expectOneOf(t, sHash, "p1")
	expectOneOf(t, sAExact, "p1")
	expectNoMessage(t, sABHash)

	c.Publish(b.NewMessage(T("a", "b"), "p2", false))
	expectOneOf(t, sAHash, "p2")
	expectOneOf(t, sHash, "p2")
	expectOneOf(t, sABHash, "p2")
	expectNoMessage(t, sAExact)
}

func TestWildcard_RetainedDelivery(t *testing.T) {
	b := NewBus(32)
	c := b.NewConnection("test")

	c.Publish(b.NewMessage(T("io", "led", "0"), "r0", true))
	c.Publish(b.NewMessage(T("io", "led", "1"), "r1", true))

	sub := c.Subscribe(T("io", "led", "+"))
	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-sub.Channel():
			seen[m.Payload.(string)] = true
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for retained replay")
		}
	}
	if !seen["r0"] || !seen["r1"] {
		t.Fatalf("retained replay incomplete: %v", seen)
	}
}

func TestOverflow_DropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("x"))
	for _, p := range []string{"1", "2", "3"} {
		c.Publish(b.NewMessage(T("x"), p, false))
	}
	// Queue length 2: "1" was dropped.
	expectOneOf(t, sub, "2")
	expectOneOf(t, sub, "3")
	expectNoMessage(t, sub)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")

	sub := c.Subscribe(T("x"))
	sub.Unsubscribe()
	c.Publish(b.NewMessage(T("x"), "gone", false))

	if _, ok := <-sub.Channel(); ok {
		t.Fatal("channel should be closed after unsubscribe")
	}
}

func TestReply(t *testing.T) {
	b := NewBus(4)
	server := b.NewConnection("server")
	client := b.NewConnection("client")

	req := server.Subscribe(T("svc", "ping"))
	resp := client.Subscribe(T("client", "inbox"))

	msg := b.NewMessage(T("svc", "ping"), "ping", false)
	msg.ReplyTo = T("client", "inbox")
	client.Publish(msg)

	select {
	case got := <-req.Channel():
		if !got.CanReply() {
			t.Fatal("request lost its reply topic")
		}
		server.Reply(got, "pong", false)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for request")
	}
	expectOneOf(t, resp, "pong")
}
