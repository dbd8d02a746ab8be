package event_test

import (
	"sync"
	"testing"
	"time"

	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalAppend(t *testing.T) {
	journal := event.NewJournal()

	first := journal.Append(event.TokenMintedEvent, "one")
	second := journal.Append(event.ItemOfferedEvent, "two")
	third := journal.Append(event.ItemBoughtEvent, "three")

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(2), second.Seq)
	assert.Equal(t, uint64(3), third.Seq)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	entries := journal.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, event.TokenMintedEvent, entries[0].Type)
	assert.Equal(t, "two", entries[1].Payload)
	assert.Equal(t, 3, journal.Size())
}

func TestJournalAppend_Concurrent(t *testing.T) {
	journal := event.NewJournal()

	const appends = 100
	var wg sync.WaitGroup
	for i := 0; i < appends; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			journal.Append(event.TokenMintedEvent, nil)
		}()
	}
	wg.Wait()

	entries := journal.Entries()
	require.Len(t, entries, appends)

	// seq numbers are gap-free in append order
	seen := make(map[uint64]bool)
	for _, entry := range entries {
		seen[entry.Seq] = true
	}
	for seq := uint64(1); seq <= appends; seq++ {
		assert.True(t, seen[seq])
	}
}

func TestJournalEntries_ReturnsCopy(t *testing.T) {
	journal := event.NewJournal()
	journal.Append(event.TokenMintedEvent, "payload")

	entries := journal.Entries()
	entries[0].Payload = "mutated"

	assert.Equal(t, "payload", journal.Entries()[0].Payload)
}

func TestEventListenerReceivesInOrder(t *testing.T) {
	var mu sync.Mutex
	received := make([]uint64, 0)
	done := make(chan struct{})

	event.AddEventListener(event.MetadataRefreshedEvent, func(entry event.Entry) {
		mu.Lock()
		received = append(received, entry.Seq)
		if len(received) == 10 {
			close(done)
		}
		mu.Unlock()
	})

	journal := event.NewJournal()
	for i := 0; i < 10; i++ {
		journal.Append(event.MetadataRefreshedEvent, nil)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not receive all entries")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 10)
	for i, seq := range received {
		assert.Equal(t, uint64(i+1), seq)
	}
}

func TestEventListenerIgnoresOtherTypes(t *testing.T) {
	received := make(chan event.Entry, 1)
	event.AddEventListener(event.TokenTransferredEvent, func(entry event.Entry) {
		received <- entry
	})

	event.EmitEvent(event.TokenMintedEvent, event.Entry{Seq: 1, Type: event.TokenMintedEvent})
	event.EmitEvent(event.TokenTransferredEvent, event.Entry{Seq: 2, Type: event.TokenTransferredEvent})

	select {
	case entry := <-received:
		assert.Equal(t, uint64(2), entry.Seq)
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not receive entry")
	}
}
