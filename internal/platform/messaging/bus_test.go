package messaging

import (
	"context"
	"sync"
	"testing"
	"time"

	"socialdesk/contexts/agency/campaign-service/ports"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(nil)
	events, cancel := bus.Subscribe(ports.CampaignEventsTopic)
	defer cancel()

	err := bus.Publish(context.Background(), ports.CampaignEventsTopic, ports.Event{
		EventID:    "e-1",
		EventType:  "campaign.created",
		CampaignID: "c-1",
		UserID:     "u-1",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-events:
		if event.EventID != "e-1" || event.EventType != "campaign.created" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected event delivery")
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus(nil)
	events, cancel := bus.Subscribe(ports.CampaignEventsTopic)
	cancel()

	if _, open := <-events; open {
		t.Fatalf("expected closed channel after cancel")
	}

	// Publishing after cancel must not reach the detached subscriber.
	if err := bus.Publish(context.Background(), ports.CampaignEventsTopic, ports.Event{EventID: "e-2"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
}

func TestBusDropsWhenSubscriberIsFull(t *testing.T) {
	bus := NewBus(nil)
	events, cancel := bus.Subscribe("slow")
	defer cancel()

	for i := 0; i < 200; i++ {
		if err := bus.Publish(context.Background(), "slow", ports.Event{EventID: "e"}); err != nil {
			t.Fatalf("publish %d failed: %v", i, err)
		}
	}
	// Buffer holds 128; the rest were dropped rather than blocking.
	if len(events) != 128 {
		t.Fatalf("expected full buffer of 128, got %d", len(events))
	}
}

func TestBusSurvivesConcurrentPublishAndCancel(t *testing.T) {
	bus := NewBus(nil)

	// Keep some standing subscribers so every publish has channels to hit.
	for i := 0; i < 64; i++ {
		_, cancel := bus.Subscribe(ports.CampaignEventsTopic)
		defer cancel()
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					bus.Publish(context.Background(), ports.CampaignEventsTopic, ports.Event{EventID: "e"})
				}
			}
		}()
	}

	// Churn subscriptions while publishers are running; a cancel racing a
	// send used to panic with "send on closed channel".
	for i := 0; i < 500; i++ {
		_, cancel := bus.Subscribe(ports.CampaignEventsTopic)
		cancel()
	}
	close(done)
	wg.Wait()
}

func TestBusTopicsAreIsolated(t *testing.T) {
	bus := NewBus(nil)
	other, cancel := bus.Subscribe("other")
	defer cancel()

	if err := bus.Publish(context.Background(), ports.CampaignEventsTopic, ports.Event{EventID: "e-3"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no cross-topic delivery")
	}
}
