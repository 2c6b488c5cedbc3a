// Package message loads the phrase pools used as time entry descriptions.
package message

import "math/rand/v2"

const (
	DefaultStart = "Starting work"
	DefaultEnd   = "Ending work"
)

// Pool is an immutable list of candidate descriptions.
type Pool struct {
	lines []string
}

func NewPool(lines []string) *Pool {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Pool{lines: cp}
}

func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.lines)
}

// Lines returns a copy of the pool contents.
func (p *Pool) Lines() []string {
	if p == nil {
		return nil
	}
	cp := make([]string, len(p.lines))
	copy(cp, p.lines)
	return cp
}

// Pick returns a uniformly chosen line, or fallback when the pool is empty.
func (p *Pool) Pick(r *rand.Rand, fallback string) string {
	if p.Len() == 0 {
		return fallback
	}
	return p.lines[r.IntN(len(p.lines))]
}
