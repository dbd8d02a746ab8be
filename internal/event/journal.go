package event

import (
	"sync"
	"time"

	"github.com/nu7hatch/gouuid"
	"go.uber.org/zap"
)

// Entry is one committed mutation. Seq is assigned on append, strictly
// increasing and gap-free across the journal.
type Entry struct {
	Seq     uint64      `json:"seq"`
	ID      string      `json:"id"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
	Time    time.Time   `json:"time"`
}

// Journal is the ordered observation log. Core state is committed before an
// entry is appended, and the entry is emitted to listeners only after it has
// been recorded, so observers never see an uncommitted mutation.
type Journal struct {
	mu      sync.Mutex
	seq     uint64
	entries []Entry
}

func NewJournal() *Journal {
	return &Journal{entries: make([]Entry, 0)}
}

func (j *Journal) Append(eventType Type, payload interface{}) Entry {
	j.mu.Lock()
	j.seq++
	entry := Entry{
		Seq:     j.seq,
		ID:      newEntryId(),
		Type:    eventType,
		Payload: payload,
		Time:    time.Now(),
	}
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	EmitEvent(eventType, entry)

	return entry
}

func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries := make([]Entry, len(j.entries))
	copy(entries, j.entries)

	return entries
}

func (j *Journal) Size() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	return len(j.entries)
}

func newEntryId() string {
	u, err := uuid.NewV4()
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Journal: Failed to create entry id")
		return ""
	}

	return u.String()
}
