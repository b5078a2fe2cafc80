package resolver

import "sync"

const historyWindow = 100

// SuccessHistory tracks the last 100 apply outcomes per suggestion kind,
// session-scoped (spec §5: "Success-history counters for suggestion types
// are session-scoped and trimmed to last 100 entries per kind").
type SuccessHistory struct {
	mu      sync.Mutex
	records map[string][]bool
}

// NewSuccessHistory returns an empty rolling history.
func NewSuccessHistory() *SuccessHistory {
	return &SuccessHistory{records: make(map[string][]bool)}
}

// Record appends an apply outcome for kind, trimming to the last 100.
func (h *SuccessHistory) Record(kind string, success bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := append(h.records[kind], success)
	if len(entries) > historyWindow {
		entries = entries[len(entries)-historyWindow:]
	}
	h.records[kind] = entries
}

// Rate returns the rolling success rate for kind as a percent (0-100), or
// -1 if no history exists yet for that kind.
func (h *SuccessHistory) Rate(kind string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := h.records[kind]
	if len(entries) == 0 {
		return -1
	}
	successes := 0
	for _, ok := range entries {
		if ok {
			successes++
		}
	}
	return 100 * float64(successes) / float64(len(entries))
}

// Blend averages a type-default confidence with the rolling historical
// success rate (spec §4.6): if there's no history yet, the default stands
// alone.
func (h *SuccessHistory) Blend(kind string, typeDefault float64) float64 {
	rate := h.Rate(kind)
	if rate < 0 {
		return typeDefault
	}
	return (typeDefault + rate) / 2
}
