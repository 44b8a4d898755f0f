// Package idgen provides fragment identifier generators.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driven"
)

// Ensure generators implement the interface.
var (
	_ driven.IDGenerator = (*UUID)(nil)
	_ driven.IDGenerator = (*Sequence)(nil)
)

// UUID generates random version 4 UUIDs.
type UUID struct{}

// NewUUID creates a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// NewID returns a random UUID.
func (*UUID) NewID() string {
	return uuid.New().String()
}

// Observe is a no-op; random UUIDs do not collide with seeded IDs.
func (*UUID) Observe(string) {}

// sequencePrefix is prepended to every sequence ID.
const sequencePrefix = "f"

// Sequence generates f1, f2, ... from a monotonic counter. The counter is
// independent of the collection size, so deleting fragments never causes
// an ID to be handed out twice.
type Sequence struct {
	mu   sync.Mutex
	next uint64
}

// NewSequence creates a sequence generator starting at f1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// NewID returns the next ID in the sequence.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := sequencePrefix + strconv.FormatUint(s.next, 10)
	s.next++
	return id
}

// Observe advances the counter past id if it has the form f<N>.
func (s *Sequence) Observe(id string) {
	n, ok := parseSequenceID(id)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n >= s.next {
		s.next = n + 1
	}
}

func parseSequenceID(id string) (uint64, bool) {
	digits, ok := strings.CutPrefix(id, sequencePrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// New returns the generator for the given strategy.
func New(strategy domain.IDStrategy) (driven.IDGenerator, error) {
	switch strategy {
	case domain.IDStrategyUUID:
		return NewUUID(), nil
	case domain.IDStrategySequence:
		return NewSequence(), nil
	default:
		return nil, fmt.Errorf("%w: id strategy %q", domain.ErrInvalidInput, strategy)
	}
}
