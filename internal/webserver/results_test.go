package webserver

import (
	"testing"
	"time"

	"github.com/shoplens/shoplens/internal/domain"
)

func TestResultCachePutGet(t *testing.T) {
	rc := newResultCache()
	token := rc.put(searchResult{
		Prediction: "Running Shoe",
		Confidence: 0.91,
		Matches:    []domain.MatchResult{{Product: domain.Product{ID: 1, Name: "Nike Air Max 270"}}},
	})
	if token == "" {
		t.Fatal("empty token")
	}

	got, ok := rc.get(token)
	if !ok {
		t.Fatal("stored result not found")
	}
	if got.Prediction != "Running Shoe" || len(got.Matches) != 1 {
		t.Errorf("unexpected result: %+v", got)
	}

	if _, ok := rc.get("not-a-token"); ok {
		t.Error("unknown token returned a result")
	}
}

func TestResultCacheExpiry(t *testing.T) {
	rc := newResultCache()
	token := rc.put(searchResult{Prediction: "Laptop"})

	// Age the entry past the TTL directly.
	rc.mu.Lock()
	r := rc.entries[token]
	r.created = time.Now().Add(-resultTTL - time.Minute)
	rc.entries[token] = r
	rc.mu.Unlock()

	if _, ok := rc.get(token); ok {
		t.Error("expired result still served")
	}

	// The next put prunes the stale entry.
	rc.put(searchResult{Prediction: "Camera"})
	rc.mu.Lock()
	_, still := rc.entries[token]
	rc.mu.Unlock()
	if still {
		t.Error("expired entry not pruned on put")
	}
}

func TestResultCacheTokensAreUnique(t *testing.T) {
	rc := newResultCache()
	a := rc.put(searchResult{})
	b := rc.put(searchResult{})
	if a == b {
		t.Error("two results share a token")
	}
}
