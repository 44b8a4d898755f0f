package services

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/idgen"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// recordingNotifier collects every event it receives.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (n *recordingNotifier) Notify(e domain.ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) kinds() []domain.ChangeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.ChangeKind, len(n.events))
	for i, e := range n.events {
		out[i] = e.Kind
	}
	return out
}

// fixedIDs hands out a scripted list of IDs, then falls back to a sequence.
type fixedIDs struct {
	ids []string
	seq *idgen.Sequence
}

func (g *fixedIDs) NewID() string {
	if len(g.ids) > 0 {
		id := g.ids[0]
		g.ids = g.ids[1:]
		return id
	}
	return g.seq.NewID()
}

func (g *fixedIDs) Observe(id string) { g.seq.Observe(id) }

// failingStore fails List so reindexing can be exercised.
type failingStore struct {
	*memory.FragmentStore
	listErr error
}

func (s *failingStore) List(ctx context.Context) ([]domain.Fragment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.FragmentStore.List(ctx)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestFragmentService(t *testing.T) (*FragmentService, *recordingNotifier, *clock) {
	t.Helper()
	n := &recordingNotifier{}
	c := &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewFragmentService(memory.NewFragmentStore(), idgen.NewSequence(), n)
	svc.SetClock(c.Now)
	return svc, n, c
}

func fragmentIDs(fragments []domain.Fragment) []string {
	out := make([]string, len(fragments))
	for i := range fragments {
		out[i] = fragments[i].ID
	}
	return out
}

// expectedTagIndex computes the sorted union of tags independently.
func expectedTagIndex(fragments []domain.Fragment) []string {
	set := map[string]bool{}
	for _, f := range fragments {
		for _, tag := range f.Tags {
			set[tag] = true
		}
	}
	out := []string{}
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func TestFragmentService_Create(t *testing.T) {
	svc, n, c := newTestFragmentService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, domain.Draft{
		Title:   "Go Proverbs",
		Content: "Clear is better than clever.",
		Type:    domain.FragmentTypeText,
		Tags:    []string{" Go ", "WISDOM", "go", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "f1", f.ID)
	assert.Equal(t, []string{"go", "wisdom"}, f.Tags)
	assert.Equal(t, c.Now(), f.CreatedAt)
	assert.Equal(t, f.CreatedAt, f.UpdatedAt)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, fragmentIDs(list))

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "wisdom"}, tags)

	require.Len(t, n.events, 1)
	assert.Equal(t, domain.ChangeCreated, n.events[0].Kind)
	assert.Equal(t, "f1", n.events[0].Fragment.ID)
}

func TestFragmentService_Create_IDIsFreshAndUnique(t *testing.T) {
	svc, _, _ := newTestFragmentService(t)
	ctx := context.Background()

	for range 5 {
		before, err := svc.List(ctx)
		require.NoError(t, err)

		f, err := svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText})
		require.NoError(t, err)

		assert.NotContains(t, fragmentIDs(before), f.ID)

		after, err := svc.List(ctx)
		require.NoError(t, err)
		count := 0
		for _, id := range fragmentIDs(after) {
			if id == f.ID {
				count++
			}
		}
		assert.Equal(t, 1, count)
	}
}

func TestFragmentService_Create_NoReuseAfterDelete(t *testing.T) {
	svc, _, _ := newTestFragmentService(t)
	ctx := context.Background()
	draft := domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText}

	a, err := svc.Create(ctx, draft)
	require.NoError(t, err)
	b, err := svc.Create(ctx, draft)
	require.NoError(t, err)
	c, err := svc.Create(ctx, draft)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	require.NoError(t, svc.Delete(ctx, b.ID))

	d, err := svc.Create(ctx, draft)
	require.NoError(t, err)
	assert.NotEqual(t, c.ID, d.ID)
	assert.Equal(t, "f4", d.ID)
}

func TestFragmentService_Create_RetriesTakenID(t *testing.T) {
	gen := &fixedIDs{ids: []string{"dup", "dup", "fresh"}, seq: idgen.NewSequence()}
	svc := NewFragmentService(memory.NewFragmentStore(), gen, nil)
	ctx := context.Background()
	draft := domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText}

	first, err := svc.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, "dup", first.ID)

	second, err := svc.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, "fresh", second.ID)
}

func TestFragmentService_Create_GivesUpOnStuckGenerator(t *testing.T) {
	ids := make([]string, maxIDAttempts+1)
	for i := range ids {
		ids[i] = "same"
	}
	gen := &fixedIDs{ids: ids, seq: idgen.NewSequence()}
	svc := NewFragmentService(memory.NewFragmentStore(), gen, nil)
	ctx := context.Background()
	draft := domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText}

	_, err := svc.Create(ctx, draft)
	require.NoError(t, err)

	_, err = svc.Create(ctx, draft)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestFragmentService_Update(t *testing.T) {
	svc, n, c := newTestFragmentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Draft{
		Title:   "Old",
		Content: "old",
		Type:    domain.FragmentTypeText,
		Tags:    []string{"a", "b"},
	})
	require.NoError(t, err)

	c.Advance(time.Hour)
	updated, err := svc.Update(ctx, domain.Fragment{
		ID:        created.ID,
		Title:     "New",
		Content:   "https://go.dev",
		Type:      domain.FragmentTypeWebsite,
		Tags:      []string{"C"},
		CreatedAt: time.Time{}, // ignored
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, created.CreatedAt.Add(time.Hour), updated.UpdatedAt)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, domain.FragmentTypeWebsite, updated.Type)
	// Full replace: old tags are gone.
	assert.Equal(t, []string{"c"}, updated.Tags)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, tags)

	assert.Equal(t, []domain.ChangeKind{domain.ChangeCreated, domain.ChangeUpdated}, n.kinds())
}

func TestFragmentService_Update_ClockSkewKeepsOrdering(t *testing.T) {
	svc, _, c := newTestFragmentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText})
	require.NoError(t, err)

	c.Advance(-time.Hour)
	updated, err := svc.Update(ctx, *created)
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestFragmentService_Update_NotFound(t *testing.T) {
	svc, n, _ := newTestFragmentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText})
	require.NoError(t, err)
	before, err := svc.List(ctx)
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.Fragment{ID: "missing", Title: "x", Content: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	after, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, []domain.ChangeKind{domain.ChangeCreated}, n.kinds())
}

func TestFragmentService_Delete(t *testing.T) {
	svc, n, _ := newTestFragmentService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, domain.Draft{Title: "a", Content: "a", Type: domain.FragmentTypeText, Tags: []string{"x", "y"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.Draft{Title: "b", Content: "b", Type: domain.FragmentTypeText, Tags: []string{"y"}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, fragmentIDs(list), a.ID)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, tags)

	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	last := n.events[len(n.events)-1]
	assert.Equal(t, domain.ChangeDeleted, last.Kind)
	assert.Equal(t, "a", last.Fragment.Title)
	assert.True(t, last.Destructive())
}

func TestFragmentService_Delete_NotFound(t *testing.T) {
	svc, n, _ := newTestFragmentService(t)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, n.kinds())
}

func TestFragmentService_Init(t *testing.T) {
	svc, n, c := newTestFragmentService(t)
	ctx := context.Background()
	seeded := time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC)

	err := svc.Init(ctx, []domain.Fragment{
		{ID: "f1", Title: "One", Content: "1", Type: domain.FragmentTypeText, Tags: []string{"React"}, CreatedAt: seeded, UpdatedAt: seeded},
		{Title: "No id", Content: "2", Type: domain.FragmentTypeText},
		{ID: "f7", Title: "Seven", Content: "7", Type: domain.FragmentTypeCode, Tags: []string{"go"}},
	})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "f1", list[0].ID)
	assert.Equal(t, "f8", list[1].ID)
	assert.Equal(t, "f7", list[2].ID)

	assert.Equal(t, seeded, list[0].CreatedAt)
	assert.Equal(t, []string{"react"}, list[0].Tags)
	assert.Equal(t, c.Now(), list[1].CreatedAt)
	assert.Equal(t, list[1].CreatedAt, list[1].UpdatedAt)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "react"}, tags)

	// Seeding is not a user mutation.
	assert.Empty(t, n.kinds())

	created, err := svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText})
	require.NoError(t, err)
	assert.Equal(t, "f9", created.ID)
}

func TestFragmentService_Init_DuplicateIDs(t *testing.T) {
	svc, _, _ := newTestFragmentService(t)

	err := svc.Init(context.Background(), []domain.Fragment{{ID: "f1"}, {ID: "f1"}})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestFragmentService_Init_ReplacesCollection(t *testing.T) {
	svc, _, _ := newTestFragmentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText, Tags: []string{"old"}})
	require.NoError(t, err)

	require.NoError(t, svc.Init(ctx, nil))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestFragmentService_Tags_ReturnsCopy(t *testing.T) {
	svc, _, _ := newTestFragmentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText, Tags: []string{"go"}})
	require.NoError(t, err)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	tags[0] = "mutated"

	tags, err = svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tags)
}

func TestFragmentService_TagIndexMatchesCollection(t *testing.T) {
	svc, _, _ := newTestFragmentService(t)
	ctx := context.Background()

	check := func() {
		t.Helper()
		list, err := svc.List(ctx)
		require.NoError(t, err)
		tags, err := svc.Tags(ctx)
		require.NoError(t, err)
		assert.Equal(t, expectedTagIndex(list), tags)
	}

	drafts := [][]string{{"b", "a"}, {"c"}, {"a", "d"}, nil, {"D", "e"}}
	var created []*domain.Fragment
	for _, tags := range drafts {
		f, err := svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText, Tags: tags})
		require.NoError(t, err)
		created = append(created, f)
		check()
	}

	upd := *created[1]
	upd.Tags = []string{"z", "a"}
	_, err := svc.Update(ctx, upd)
	require.NoError(t, err)
	check()

	for _, f := range created[:3] {
		require.NoError(t, svc.Delete(ctx, f.ID))
		check()
	}
}

func TestFragmentService_ReindexFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(svc *FragmentService, seeded *domain.Fragment) error
	}{
		{
			name: "create",
			mutate: func(svc *FragmentService, _ *domain.Fragment) error {
				_, err := svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText, Tags: []string{"go"}})
				return err
			},
		},
		{
			name: "update",
			mutate: func(svc *FragmentService, seeded *domain.Fragment) error {
				upd := *seeded
				upd.Title = "renamed"
				upd.Tags = []string{"go"}
				_, err := svc.Update(ctx, upd)
				return err
			},
		},
		{
			name: "delete",
			mutate: func(svc *FragmentService, seeded *domain.Fragment) error {
				return svc.Delete(ctx, seeded.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &failingStore{FragmentStore: memory.NewFragmentStore()}
			n := &recordingNotifier{}
			svc := NewFragmentService(store, idgen.NewSequence(), n)

			seeded, err := svc.Create(ctx, domain.Draft{Title: "first", Content: "c", Type: domain.FragmentTypeText, Tags: []string{"rust"}})
			require.NoError(t, err)

			before, err := svc.List(ctx)
			require.NoError(t, err)

			store.listErr = errors.New("disk on fire")
			err = tt.mutate(svc, seeded)
			assert.ErrorContains(t, err, "rebuild tag index")
			store.listErr = nil

			after, err := svc.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)

			tags, err := svc.Tags(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"rust"}, tags)

			assert.Equal(t, []domain.ChangeKind{domain.ChangeCreated}, n.kinds())
		})
	}
}

func TestFragmentService_ConcurrentMutationsAndReads(t *testing.T) {
	svc, _, _ := newTestFragmentService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			tag := string(rune('a' + n%5))
			_, _ = svc.Create(ctx, domain.Draft{Title: "t", Content: "c", Type: domain.FragmentTypeText, Tags: []string{tag}})
		}(i)
		go func() {
			defer wg.Done()
			list, err := svc.List(ctx)
			if err == nil {
				_ = Filter(list, "t", nil)
			}
		}()
	}
	wg.Wait()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)

	ids := fragmentIDs(list)
	slices.Sort(ids)
	assert.Len(t, slices.Compact(ids), 20)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, tags)
}
