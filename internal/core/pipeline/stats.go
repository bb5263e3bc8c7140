package pipeline

import "sync"

// Stats counts how often each extraction path settled a request.
type Stats struct {
	mu sync.Mutex

	totalRequests         int64
	cacheHits             int64
	structuredDataSuccess int64
	regexSuccess          int64
	llmSuccess            int64
	failures              int64
}

// StatsSnapshot is a point-in-time copy of the counters plus derived
// rates.
type StatsSnapshot struct {
	TotalRequests         int64   `json:"total_requests"`
	CacheHits             int64   `json:"cache_hits"`
	StructuredDataSuccess int64   `json:"structured_data_success"`
	RegexSuccess          int64   `json:"regex_success"`
	LLMSuccess            int64   `json:"llm_success"`
	Failures              int64   `json:"failures"`
	CacheHitRate          float64 `json:"cache_hit_rate"`
	StructuredDataRate    float64 `json:"structured_data_rate"`
	RegexRate             float64 `json:"regex_rate"`
	LLMRate               float64 `json:"llm_rate"`
}

func (s *Stats) recordRequest() {
	s.mu.Lock()
	s.totalRequests++
	s.mu.Unlock()
}

func (s *Stats) recordCacheHit() {
	s.mu.Lock()
	s.cacheHits++
	s.mu.Unlock()
}

func (s *Stats) recordStructuredData() {
	s.mu.Lock()
	s.structuredDataSuccess++
	s.mu.Unlock()
}

func (s *Stats) recordRegex() {
	s.mu.Lock()
	s.regexSuccess++
	s.mu.Unlock()
}

func (s *Stats) recordLLM() {
	s.mu.Lock()
	s.llmSuccess++
	s.mu.Unlock()
}

func (s *Stats) recordFailure() {
	s.mu.Lock()
	s.failures++
	s.mu.Unlock()
}

// Snapshot copies the counters and computes rates over total requests.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		TotalRequests:         s.totalRequests,
		CacheHits:             s.cacheHits,
		StructuredDataSuccess: s.structuredDataSuccess,
		RegexSuccess:          s.regexSuccess,
		LLMSuccess:            s.llmSuccess,
		Failures:              s.failures,
	}
	if s.totalRequests > 0 {
		total := float64(s.totalRequests)
		snap.CacheHitRate = float64(s.cacheHits) / total
		snap.StructuredDataRate = float64(s.structuredDataSuccess) / total
		snap.RegexRate = float64(s.regexSuccess) / total
		snap.LLMRate = float64(s.llmSuccess) / total
	}
	return snap
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalRequests = 0
	s.cacheHits = 0
	s.structuredDataSuccess = 0
	s.regexSuccess = 0
	s.llmSuccess = 0
	s.failures = 0
}
