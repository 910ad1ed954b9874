package appstate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastenot/entities"
	"wastenot/pkg/store"
)

func sampleItem(name string) entities.Item {
	at := time.Date(2025, time.January, 2, 8, 30, 0, 0, time.UTC)
	return entities.Item{
		ID:         "item_" + name,
		Name:       name,
		Category:   "misc",
		Quantity:   1,
		ExpiryDate: entities.NewDate(at.Add(72 * time.Hour)),
		AddedDate:  entities.NewDate(at),
	}
}

func TestReload_EmptyStore(t *testing.T) {
	s := New(store.NewMemoryStore())
	require.NoError(t, s.Reload(context.Background()))

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Recipes)
	assert.Nil(t, snap.User)
}

func TestReload_CorruptKeyFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryStore()
	require.NoError(t, repo.Put(ctx, store.KeyItems, []byte(`[{"id": "broken"`)))
	require.NoError(t, repo.Put(ctx, store.KeyPreferences, []byte(`{"currency":"EUR"}`)))

	s := New(repo)
	require.NoError(t, s.Reload(ctx))

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, "EUR", snap.Preferences["currency"])
}

func TestUpdate_PersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryStore()
	s := New(repo)

	var changes []Change
	s.Subscribe(func(_ context.Context, c Change) { changes = append(changes, c) })

	err := s.Update(ctx, func(snap *Snapshot) ([]string, error) {
		snap.Items = append(snap.Items, sampleItem("milk"))
		return []string{store.KeyItems}, nil
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, []string{store.KeyItems}, changes[0].Keys)

	fresh := New(repo)
	require.NoError(t, fresh.Reload(ctx))
	assert.Equal(t, []entities.Item{sampleItem("milk")}, fresh.Items())
}

func TestUpdate_ErrorCommitsNothing(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemoryStore())
	notified := false
	s.Subscribe(func(context.Context, Change) { notified = true })

	boom := errors.New("boom")
	err := s.Update(ctx, func(snap *Snapshot) ([]string, error) {
		snap.Items = append(snap.Items, sampleItem("milk"))
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, s.Items())
	assert.False(t, notified)
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemoryStore())
	require.NoError(t, s.Update(ctx, func(snap *Snapshot) ([]string, error) {
		snap.Items = []entities.Item{sampleItem("milk")}
		snap.Preferences["currency"] = "USD"
		return []string{store.KeyItems, store.KeyPreferences}, nil
	}))

	snap := s.Snapshot()
	snap.Items[0].Name = "changed"
	snap.Preferences["currency"] = "EUR"

	again := s.Snapshot()
	assert.Equal(t, "milk", again.Items[0].Name)
	assert.Equal(t, "USD", again.Preferences["currency"])
}

func TestUserAndKeyAreDeletedWhenCleared(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryStore()
	s := New(repo)

	require.NoError(t, s.Update(ctx, func(snap *Snapshot) ([]string, error) {
		snap.User = &entities.User{ID: "user_1", Name: "Demo User"}
		snap.RecipeAPIKey = "secret"
		return []string{store.KeyUser, store.KeyRecipeAPIKey}, nil
	}))
	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{store.KeyRecipeAPIKey, store.KeyUser}, keys)

	require.NoError(t, s.Update(ctx, func(snap *Snapshot) ([]string, error) {
		snap.User = nil
		return []string{store.KeyUser}, nil
	}))
	keys, err = repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{store.KeyRecipeAPIKey}, keys)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryStore()
	s := New(repo)
	require.NoError(t, s.Update(ctx, func(snap *Snapshot) ([]string, error) {
		snap.Items = []entities.Item{sampleItem("milk")}
		snap.Analytics["lastExport"] = "2025-01-01"
		return []string{store.KeyItems, store.KeyAnalytics}, nil
	}))

	require.NoError(t, s.Clear(ctx))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Empty(t, s.Items())
}

// pausingStore blocks the first read of the items key until release is closed.
type pausingStore struct {
	store.StoreRepository
	once    sync.Once
	reached chan struct{}
	release chan struct{}
}

func (p *pausingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == store.KeyItems {
		p.once.Do(func() {
			close(p.reached)
			<-p.release
		})
	}
	return p.StoreRepository.Get(ctx, key)
}

func addItem(ctx context.Context, s *State, name string) error {
	return s.Update(ctx, func(snap *Snapshot) ([]string, error) {
		snap.Items = append(snap.Items, sampleItem(name))
		return []string{store.KeyItems}, nil
	})
}

func TestReload_DoesNotDropConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	repo := &pausingStore{
		StoreRepository: store.NewMemoryStore(),
		reached:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	s := New(repo)

	reloaded := make(chan error, 1)
	go func() { reloaded <- s.Reload(ctx) }()
	<-repo.reached

	added := make(chan error, 1)
	go func() { added <- addItem(ctx, s, "milk") }()

	select {
	case err := <-added:
		require.NoError(t, err)
		t.Fatal("update committed while reload was reading the store")
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)
	require.NoError(t, <-reloaded)
	require.NoError(t, <-added)
	require.NoError(t, addItem(ctx, s, "eggs"))

	var stored []entities.Item
	ok, err := store.LoadJSON(ctx, repo, store.KeyItems, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	names := make([]string, 0, len(stored))
	for _, it := range stored {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"milk", "eggs"}, names)
}
