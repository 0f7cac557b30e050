package websocket

import (
	"testing"
	"time"
)

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestReconnectReplacesOldConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	old := &Client{hub: hub, send: make(chan []byte, 4), ClientID: "terminal-1"}
	hub.register <- old
	waitForCount(t, hub, 1)

	replacement := &Client{hub: hub, send: make(chan []byte, 4), ClientID: "terminal-1"}
	hub.register <- replacement
	waitForCount(t, hub, 1)

	// the hub closed the old channel during replacement
	select {
	case _, ok := <-old.send:
		if ok {
			t.Fatal("unexpected message queued on replaced connection")
		}
	case <-time.After(time.Second):
		t.Fatal("old send channel was not closed on reconnect")
	}

	// the old connection's read loop may still answer a ping after it
	// was replaced; that must fail cleanly instead of panicking
	if err := old.SendJSON(map[string]string{"type": "PONG"}); err == nil {
		t.Fatal("send on replaced connection should fail")
	}

	if err := replacement.SendJSON(map[string]string{"type": "PONG"}); err != nil {
		t.Fatalf("send on replacement failed: %v", err)
	}
}

func TestLateUnregisterKeepsReplacement(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	old := &Client{hub: hub, send: make(chan []byte, 4), ClientID: "terminal-2"}
	hub.register <- old
	replacement := &Client{hub: hub, send: make(chan []byte, 4), ClientID: "terminal-2"}
	hub.register <- replacement
	waitForCount(t, hub, 1)

	// replaced connection tears down after its successor registered
	hub.unregister <- old

	hub.Broadcast(map[string]string{"type": "JOB_FINISHED"})
	select {
	case msg, ok := <-replacement.send:
		if !ok {
			t.Fatal("replacement channel closed by late unregister")
		}
		if len(msg) == 0 {
			t.Fatal("empty broadcast payload")
		}
	case <-time.After(time.Second):
		t.Fatal("replacement did not receive broadcast")
	}
}

func TestCloseSendIsIdempotent(t *testing.T) {
	c := &Client{send: make(chan []byte, 1)}
	c.closeSend()
	c.closeSend()

	if err := c.SendJSON(map[string]string{"type": "PONG"}); err == nil {
		t.Fatal("send on closed client should fail")
	}
}
