package webserver

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoplens/shoplens/internal/domain"
)

// searchResult is one completed search held server-side. Only its opaque
// token crosses the redirect boundary; result data is never round-tripped
// through request parameters.
type searchResult struct {
	Prediction string
	Confidence float64
	Keywords   string
	Matches    []domain.MatchResult
	BestPrice  float64
	HasBest    bool
	ImageURL   string
	created    time.Time
}

const resultTTL = 30 * time.Minute

type resultCache struct {
	mu      sync.Mutex
	entries map[string]searchResult
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[string]searchResult)}
}

func (rc *resultCache) put(r searchResult) string {
	token := uuid.NewString()
	r.created = time.Now()
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for k, v := range rc.entries {
		if time.Since(v.created) > resultTTL {
			delete(rc.entries, k)
		}
	}
	rc.entries[token] = r
	return token
}

func (rc *resultCache) get(token string) (searchResult, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	r, ok := rc.entries[token]
	if !ok || time.Since(r.created) > resultTTL {
		return searchResult{}, false
	}
	return r, true
}
