package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

// Ensure FragmentService implements the interface.
var _ driving.FragmentService = (*FragmentService)(nil)

// maxIDAttempts bounds the retries when a generated ID is already taken.
const maxIDAttempts = 16

// FragmentService owns the session's fragment collection and its tag index.
// All mutations are serialised behind a single writer lock; the tag index
// is computed before the store write and swapped in after it succeeds, so
// it is never stale and a failed mutation changes nothing.
type FragmentService struct {
	mu       sync.RWMutex
	store    driven.FragmentStore
	ids      driven.IDGenerator
	notifier driven.Notifier
	now      func() time.Time
	tags     []string
}

// NewFragmentService creates a new fragment service.
// The notifier is optional (can be nil).
func NewFragmentService(
	store driven.FragmentStore,
	ids driven.IDGenerator,
	notifier driven.Notifier,
) *FragmentService {
	return &FragmentService{
		store:    store,
		ids:      ids,
		notifier: notifier,
		now:      time.Now,
		tags:     []string{},
	}
}

// SetClock overrides the time source. Used by tests.
func (s *FragmentService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Init replaces the collection with the initial fragments. Tags are
// normalised, missing IDs and timestamps are filled in, and every ID is
// reported to the generator so it is never handed out again.
// Init does not notify observers.
func (s *FragmentService) Init(ctx context.Context, initial []domain.Fragment) error {
	logger.Section("Fragment Init")

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	seen := make(map[string]struct{}, len(initial))
	fragments := make([]domain.Fragment, 0, len(initial))

	// Observe explicit IDs first so generated ones cannot collide with them.
	for _, f := range initial {
		if f.ID == "" {
			continue
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("init fragment %s: %w", f.ID, domain.ErrAlreadyExists)
		}
		seen[f.ID] = struct{}{}
		s.ids.Observe(f.ID)
	}

	for _, f := range initial {
		f = f.Clone()
		if f.ID == "" {
			id, err := s.freshID(ctx, seen)
			if err != nil {
				return err
			}
			f.ID = id
			seen[id] = struct{}{}
		}
		f.Tags = domain.NormaliseTags(f.Tags)
		if f.CreatedAt.IsZero() {
			f.CreatedAt = now
		}
		if f.UpdatedAt.Before(f.CreatedAt) {
			f.UpdatedAt = f.CreatedAt
		}
		fragments = append(fragments, f)
	}

	if err := s.store.Reset(ctx, fragments); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}

	s.tags = buildTagIndex(fragments)
	logger.Debug("Initialised %d fragments, %d tags", len(fragments), len(s.tags))
	return nil
}

// Create inserts a new fragment with a fresh ID and CreatedAt = UpdatedAt = now.
func (s *FragmentService) Create(ctx context.Context, draft domain.Draft) (*domain.Fragment, error) {
	logger.Section("Fragment Create")

	s.mu.Lock()
	id, err := s.freshID(ctx, nil)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	now := s.now()
	f := domain.Fragment{
		ID:        id,
		Title:     draft.Title,
		Content:   draft.Content,
		Type:      draft.Type,
		Tags:      domain.NormaliseTags(draft.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	tags, err := s.nextIndex(ctx, f.ID, &f)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.store.Insert(ctx, f); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("insert fragment: %w", err)
	}
	s.tags = tags
	s.mu.Unlock()

	logger.Debug("Created fragment %s (%s) with tags %v", f.ID, f.Type, f.Tags)
	s.notify(domain.ChangeCreated, f, now)

	out := f.Clone()
	return &out, nil
}

// Update fully replaces Title, Content, Type and Tags of an existing
// fragment. ID and CreatedAt are preserved and UpdatedAt is refreshed.
func (s *FragmentService) Update(ctx context.Context, fragment domain.Fragment) (*domain.Fragment, error) {
	logger.Section("Fragment Update")

	s.mu.Lock()
	existing, err := s.store.Get(ctx, fragment.ID)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("update fragment %s: %w", fragment.ID, err)
	}

	now := s.now()
	if now.Before(existing.CreatedAt) {
		now = existing.CreatedAt
	}
	updated := domain.Fragment{
		ID:        existing.ID,
		Title:     fragment.Title,
		Content:   fragment.Content,
		Type:      fragment.Type,
		Tags:      domain.NormaliseTags(fragment.Tags),
		CreatedAt: existing.CreatedAt,
		UpdatedAt: now,
	}

	tags, err := s.nextIndex(ctx, updated.ID, &updated)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.store.Replace(ctx, updated); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("replace fragment %s: %w", updated.ID, err)
	}
	s.tags = tags
	s.mu.Unlock()

	logger.Debug("Updated fragment %s", updated.ID)
	s.notify(domain.ChangeUpdated, updated, now)

	out := updated.Clone()
	return &out, nil
}

// Delete removes a fragment. A missing ID returns ErrNotFound and leaves
// the collection untouched.
func (s *FragmentService) Delete(ctx context.Context, id string) error {
	logger.Section("Fragment Delete")

	s.mu.Lock()
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete fragment %s: %w", id, err)
	}
	tags, err := s.nextIndex(ctx, id, nil)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete fragment %s: %w", id, err)
	}
	s.tags = tags
	now := s.now()
	s.mu.Unlock()

	logger.Debug("Deleted fragment %s", id)
	s.notify(domain.ChangeDeleted, *existing, now)
	return nil
}

// Get retrieves a fragment by ID.
func (s *FragmentService) Get(ctx context.Context, id string) (*domain.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Get(ctx, id)
}

// List returns every fragment in insertion order.
func (s *FragmentService) List(ctx context.Context) ([]domain.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.List(ctx)
}

// Tags returns the sorted, deduplicated set of tags in use.
func (s *FragmentService) Tags(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tags), nil
}

// freshID asks the generator for an ID that is not in the store or in
// reserved. Caller must hold s.mu.
func (s *FragmentService) freshID(ctx context.Context, reserved map[string]struct{}) (string, error) {
	for range maxIDAttempts {
		id := s.ids.NewID()
		if _, taken := reserved[id]; taken {
			continue
		}
		_, err := s.store.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("check id %s: %w", id, err)
		}
		logger.Warn("Generated ID %s already in use, retrying", id)
	}
	return "", fmt.Errorf("generate fragment id: %w", domain.ErrAlreadyExists)
}

// nextIndex computes the tag index the collection will have once the
// fragment with the given id is replaced by next, or removed when next is
// nil. It reads the store before the write, so a failure here leaves both
// the store and s.tags untouched. Caller must hold s.mu.
func (s *FragmentService) nextIndex(ctx context.Context, id string, next *domain.Fragment) ([]string, error) {
	fragments, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("rebuild tag index: %w", err)
	}
	kept := make([]domain.Fragment, 0, len(fragments)+1)
	for i := range fragments {
		if fragments[i].ID != id {
			kept = append(kept, fragments[i])
		}
	}
	if next != nil {
		kept = append(kept, *next)
	}
	return buildTagIndex(kept), nil
}

func (s *FragmentService) notify(kind domain.ChangeKind, f domain.Fragment, at time.Time) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(domain.ChangeEvent{Kind: kind, Fragment: f.Clone(), At: at})
}

// buildTagIndex returns the sorted union of every fragment's tags.
func buildTagIndex(fragments []domain.Fragment) []string {
	set := make(map[string]struct{})
	for i := range fragments {
		for _, tag := range fragments[i].Tags {
			set[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
