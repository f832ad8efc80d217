package advisor

import (
	"testing"

	"github.com/abhisek/careerquest/internal/insights"
	"github.com/abhisek/careerquest/internal/ledger"
)

func TestInsightCacheEvictsLeastRecent(t *testing.T) {
	c := newInsightCache(2)
	ins := []insights.Insight{insights.Fallback()}

	c.put("a", 1, ins)
	c.put("b", 1, ins)
	if _, ok := c.get("a", 1); !ok {
		t.Fatal("a should be cached")
	}
	c.put("c", 1, ins)

	if _, ok := c.get("b", 1); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.get("a", 1); !ok {
		t.Error("a was recently used and should remain")
	}
	if c.len() != 2 {
		t.Errorf("len = %d, want 2", c.len())
	}
}

func TestInsightCacheFingerprintMismatch(t *testing.T) {
	c := newInsightCache(2)
	c.put("a", 1, []insights.Insight{insights.Fallback()})

	if _, ok := c.get("a", 2); ok {
		t.Error("stale fingerprint should miss")
	}

	c.put("a", 2, nil)
	if got, ok := c.get("a", 2); !ok || len(got) != 0 {
		t.Errorf("get after update = %v, %v", got, ok)
	}
	if c.len() != 1 {
		t.Errorf("len = %d, want 1", c.len())
	}
}

func TestFingerprint(t *testing.T) {
	a := ledger.Ledger{"Logic": 30, "Creativity": 15}
	b := ledger.Ledger{"Creativity": 15, "Logic": 30, "Research": 0}

	if fingerprint(a) != fingerprint(b) {
		t.Error("zero entries and key order should not change the fingerprint")
	}
	if fingerprint(a) == fingerprint(ledger.Ledger{"Logic": 31, "Creativity": 15}) {
		t.Error("different XP should change the fingerprint")
	}
	if fingerprint(ledger.Ledger{"ab": 1}) == fingerprint(ledger.Ledger{"a": 1, "b": 1}) {
		t.Error("distinct ledgers collided")
	}
}
