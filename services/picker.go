package services

import (
	"math/rand/v2"
	"sync"
)

// Picker chooses an index in [0, n). Implementations must be safe for concurrent use
// since one Responder serves every request.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// NewRandomPicker uses the process-wide random source.
func NewRandomPicker() Picker {
	return globalPicker{}
}

type seededPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededPicker returns a deterministic Picker: the same seed gives the same replies.
func NewSeededPicker(seed uint64) Picker {
	return &seededPicker{rnd: rand.New(rand.NewPCG(seed, seed))}
}

func (p *seededPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}
