// Package reconcile tracks message IDs across the cached and raw delete/edit
// event paths so the same occurrence is never logged twice, and so deletions
// already explained by a moderation action are not reported again.
package reconcile

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// GracePeriod is how long a raw-path handler waits before trusting that the
// cached-path handler for the same message already ran. A cached delivery
// delayed past this window still races and can produce a duplicate notice;
// the wait is a best-effort heuristic, not a guarantee.
const GracePeriod = time.Second

const (
	setCapacity = 2048
	// Entries the fallback path never consumes age out on their own.
	setTTL = 8 * GracePeriod
)

// Registry holds the three transient message-ID sets. All sets are bounded
// by size and TTL; they must never grow without limit over long uptime.
type Registry struct {
	ignored     *lru.LRU[string, struct{}]
	seenDeletes *lru.LRU[string, struct{}]
	seenEdits   *lru.LRU[string, struct{}]
}

func NewRegistry() *Registry {
	return &Registry{
		ignored:     lru.NewLRU[string, struct{}](setCapacity, nil, setTTL),
		seenDeletes: lru.NewLRU[string, struct{}](setCapacity, nil, setTTL),
		seenEdits:   lru.NewLRU[string, struct{}](setCapacity, nil, setTTL),
	}
}

// IgnoreDeletions marks message IDs whose upcoming deletion must not be
// logged, because the moderation action deleting them already explains it.
// Adding an already-present ID is a no-op.
func (r *Registry) IgnoreDeletions(messageIDs ...string) {
	for _, id := range messageIDs {
		r.ignored.Add(id, struct{}{})
	}
}

// ConsumeIgnored reports whether the ID was marked ignored and removes it,
// so exactly one suppression triggers per ignored deletion.
func (r *Registry) ConsumeIgnored(messageID string) bool {
	return consume(r.ignored, messageID)
}

// MarkDeleteSeen records that the cached-path delete handler processed the ID.
func (r *Registry) MarkDeleteSeen(messageID string) {
	r.seenDeletes.Add(messageID, struct{}{})
}

// ConsumeDeleteSeen reports whether the cached path already handled the
// deletion and removes the record.
func (r *Registry) ConsumeDeleteSeen(messageID string) bool {
	return consume(r.seenDeletes, messageID)
}

// MarkEditSeen records that the cached-path edit handler processed the ID.
func (r *Registry) MarkEditSeen(messageID string) {
	r.seenEdits.Add(messageID, struct{}{})
}

// ConsumeEditSeen reports whether the cached path already handled the edit
// and removes the record.
func (r *Registry) ConsumeEditSeen(messageID string) bool {
	return consume(r.seenEdits, messageID)
}

// consume is check-then-remove. The two steps are not atomic; concurrent
// handlers for the same ID can in theory both observe it, which is the
// accepted race behind GracePeriod.
func consume(set *lru.LRU[string, struct{}], id string) bool {
	if _, ok := set.Get(id); !ok {
		return false
	}
	set.Remove(id)
	return true
}
