package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishOutcomeDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishOutcome(models.MemoOutcome{
		Source:   "memo.m4a",
		Status:   models.StatusIngested,
		NotePath: "notes/memos/x.md",
	})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: memo.ingested") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"source":"memo.m4a"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishRunDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishRun(models.RunReport{Outcomes: []models.MemoOutcome{
		{Status: models.StatusIngested},
		{Status: models.StatusFailed},
	}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: run.completed") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"ingested":1`) || !strings.Contains(s, `"failed":1`) {
			t.Errorf("missing counts in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := NewBroker()
	b.Close()
	// Must not panic or block.
	b.Publish(Event{Type: "memo.ingested"})
	if b.ClientCount() != 0 {
		t.Error("closed broker reports clients")
	}
}
