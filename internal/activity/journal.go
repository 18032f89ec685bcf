// Package activity keeps the bounded, append-only audit journal. Entries
// flow through an event bus so request handlers never block on journal
// persistence, and persistence failures never fail the primary action.
package activity

import (
	"os"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/shoplens/shoplens/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const topicRecord = "activity:record"

// Journal is the durable activity log at path, capped at the most recent
// domain.MaxActivityEntries entries (oldest dropped first).
type Journal struct {
	path string
	mu   sync.Mutex
	bus  EventBus.Bus
	node *snowflake.Node
}

func NewJournal(path string) *Journal {
	node, err := snowflake.NewNode(1)
	if err != nil {
		zap.S().Warnf("snowflake node init failed: %s", err)
	}
	j := &Journal{path: path, bus: EventBus.New(), node: node}
	// Transactional async subscription keeps entries ordered while
	// decoupling publishers from disk writes.
	_ = j.bus.SubscribeAsync(topicRecord, j.persist, true)
	return j
}

// Record appends one entry with a server-generated timestamp. It never
// fails the caller: persistence errors are only surfaced on the console.
func (j *Journal) Record(actor, action, details, ip string) {
	if actor == "" {
		actor = domain.AnonymousActor
	}
	entry := domain.ActivityEntry{
		Timestamp: time.Now().Format(domain.TimeLayout),
		User:      actor,
		Action:    action,
		Details:   details,
		IP:        ip,
	}
	if j.node != nil {
		entry.ID = j.node.Generate().String()
	}
	zap.S().Infof("[%s] %s: %s %s", entry.Timestamp, actor, action, details)
	j.bus.Publish(topicRecord, entry)
}

func (j *Journal) persist(entry domain.ActivityEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries := j.load()
	entries = append(entries, entry)
	if len(entries) > domain.MaxActivityEntries {
		entries = entries[len(entries)-domain.MaxActivityEntries:]
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		zap.S().Errorf("activity journal encode failed: %s", err)
		return
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		zap.S().Errorf("activity journal write failed: %s", err)
	}
}

// Tail returns the most recent n entries, oldest first.
func (j *Journal) Tail(n int) []domain.ActivityEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries := j.load()
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries
}

// Len reports the current journal length.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.load())
}

// Flush waits for queued entries to reach disk.
func (j *Journal) Flush() {
	j.bus.WaitAsync()
}

func (j *Journal) load() []domain.ActivityEntry {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.S().Errorf("activity journal read failed: %s", err)
		}
		return nil
	}
	var entries []domain.ActivityEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		zap.S().Errorf("activity journal decode failed: %s", err)
		return nil
	}
	return entries
}
