package services

import (
	"encoding/json"
	"testing"
	"time"

	"blogapi/models"
)

func receive(t *testing.T, client *models.Client) models.WSMessage {
	t.Helper()
	select {
	case raw, ok := <-client.Send:
		if !ok {
			t.Fatalf("send channel of %s closed", client.ID)
		}
		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for message to %s", client.ID)
	}
	return models.WSMessage{}
}

func TestHubRouting(t *testing.T) {
	service := NewHubService()
	hub := service.GetHub()

	alice := models.NewClient(hub, nil, 1)
	bob := models.NewClient(hub, nil, 2)
	hub.Register <- alice
	hub.Register <- bob

	service.BroadcastToUser(1, models.EventCommentCreated, map[string]string{"post": "hello"})
	if msg := receive(t, alice); msg.Type != models.EventCommentCreated {
		t.Fatalf("alice got %q", msg.Type)
	}

	service.BroadcastToAll(models.EventPostPublished, map[string]string{"slug": "hello"})
	if msg := receive(t, alice); msg.Type != models.EventPostPublished {
		t.Fatalf("alice got %q", msg.Type)
	}
	// bob never saw alice's direct message
	if msg := receive(t, bob); msg.Type != models.EventPostPublished {
		t.Fatalf("bob got %q", msg.Type)
	}

	hub.Unregister <- alice
	select {
	case _, ok := <-alice.Send:
		if ok {
			t.Fatal("expected closed send channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed after unregister")
	}

	// a second unregister must not panic on the closed channel
	hub.Unregister <- alice

	service.BroadcastToUser(1, models.EventCommentCreated, nil)
	service.BroadcastToAll(models.EventPostPublished, nil)
	if msg := receive(t, bob); msg.Type != models.EventPostPublished {
		t.Fatalf("bob got %q", msg.Type)
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	service := NewHubService()
	hub := service.GetHub()

	slow := &models.Client{ID: "slow", Hub: hub, Send: make(chan []byte, 1), UserID: 7}
	slow.Send <- []byte(`{"type":"stale"}`)
	fast := models.NewClient(hub, nil, 7)
	hub.Register <- slow
	hub.Register <- fast

	service.BroadcastToUser(7, models.EventPing, nil)
	if msg := receive(t, fast); msg.Type != models.EventPing {
		t.Fatalf("fast got %q", msg.Type)
	}

	<-slow.Send
	if _, ok := <-slow.Send; ok {
		t.Fatal("full client should have been dropped")
	}
}
