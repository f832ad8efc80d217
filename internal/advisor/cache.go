package advisor

import (
	"container/list"
	"encoding/binary"
	"hash/fnv"
	"slices"
	"sync"

	"github.com/abhisek/careerquest/internal/insights"
	"github.com/abhisek/careerquest/internal/ledger"
)

// insightCache keeps the last generated insights per user, evicting the
// least recently used user once full. An entry is valid only while the
// user's ledger fingerprint is unchanged.
type insightCache struct {
	mu      sync.Mutex
	size    int
	order   *list.List // front is most recent; values are *cacheEntry
	entries map[string]*list.Element
}

type cacheEntry struct {
	user        string
	fingerprint uint64
	insights    []insights.Insight
}

func newInsightCache(size int) *insightCache {
	return &insightCache{
		size:    size,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func (c *insightCache) get(user string, fp uint64) ([]insights.Insight, bool) {
	if c.size <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[user]
	if !ok {
		return nil, false
	}
	e := el.Value.(*cacheEntry)
	if e.fingerprint != fp {
		return nil, false
	}
	c.order.MoveToFront(el)
	return slices.Clone(e.insights), true
}

func (c *insightCache) put(user string, fp uint64, ins []insights.Insight) {
	if c.size <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[user]; ok {
		e := el.Value.(*cacheEntry)
		e.fingerprint, e.insights = fp, slices.Clone(ins)
		c.order.MoveToFront(el)
		return
	}
	c.entries[user] = c.order.PushFront(&cacheEntry{user: user, fingerprint: fp, insights: slices.Clone(ins)})
	for c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).user)
	}
}

func (c *insightCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// fingerprint hashes a ledger's nonzero entries in key order.
func fingerprint(l ledger.Ledger) uint64 {
	keys := make([]string, 0, len(l))
	for k, v := range l {
		if v != 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	h := fnv.New64a()
	var buf [8]byte
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], uint64(l[k]))
		h.Write(buf[:])
	}
	return h.Sum64()
}
