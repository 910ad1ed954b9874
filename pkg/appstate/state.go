package appstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/store"
)

type (
	// Snapshot holds the working copies of everything persisted in the store.
	Snapshot struct {
		Items        []entities.Item
		Recipes      []entities.Recipe
		Analytics    map[string]any
		Preferences  entities.Preferences
		User         *entities.User
		RecipeAPIKey string
	}

	// Change names the store keys written by one Update.
	Change struct {
		Keys []string
	}

	Listener func(ctx context.Context, change Change)

	// State is the application state shared by every service. Mutations go
	// through Update, which persists the touched keys and notifies listeners.
	State struct {
		mu        sync.RWMutex
		repo      store.StoreRepository
		snap      Snapshot
		listeners []Listener
	}
)

func New(repo store.StoreRepository) *State {
	return &State{repo: repo, snap: emptySnapshot()}
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Items:       []entities.Item{},
		Recipes:     []entities.Recipe{},
		Analytics:   map[string]any{},
		Preferences: entities.Preferences{},
	}
}

// Reload replaces the working copies with what the store holds. A key that
// fails to parse is treated as absent. The write lock is held from the first
// read to the swap.
func (s *State) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.snap = next
	return nil
}

func (s *State) load(ctx context.Context) (Snapshot, error) {
	next := emptySnapshot()
	targets := []struct {
		key string
		dst any
	}{
		{store.KeyItems, &next.Items},
		{store.KeyRecipes, &next.Recipes},
		{store.KeyAnalytics, &next.Analytics},
		{store.KeyPreferences, &next.Preferences},
		{store.KeyUser, &next.User},
		{store.KeyRecipeAPIKey, &next.RecipeAPIKey},
	}
	for _, t := range targets {
		if _, err := store.LoadJSON(ctx, s.repo, t.key, t.dst); err != nil {
			if errors.Is(err, domain.ErrStorageParse) {
				log.Warnf("ignoring stored %s: %v", t.key, err)
				resetTarget(&next, t.key)
				continue
			}
			return Snapshot{}, fmt.Errorf("reload state: %w", err)
		}
	}
	// A stored JSON null decodes to nil; keep the collections non-nil.
	if next.Items == nil {
		next.Items = []entities.Item{}
	}
	if next.Recipes == nil {
		next.Recipes = []entities.Recipe{}
	}
	if next.Analytics == nil {
		next.Analytics = map[string]any{}
	}
	if next.Preferences == nil {
		next.Preferences = entities.Preferences{}
	}
	return next, nil
}

func resetTarget(snap *Snapshot, key string) {
	empty := emptySnapshot()
	switch key {
	case store.KeyItems:
		snap.Items = empty.Items
	case store.KeyRecipes:
		snap.Recipes = empty.Recipes
	case store.KeyAnalytics:
		snap.Analytics = empty.Analytics
	case store.KeyPreferences:
		snap.Preferences = empty.Preferences
	case store.KeyUser:
		snap.User = nil
	case store.KeyRecipeAPIKey:
		snap.RecipeAPIKey = ""
	}
}

// Snapshot returns a copy that callers may freely modify.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

func (s *State) Items() []entities.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Item{}, s.snap.Items...)
}

func (s *State) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Update runs fn against a copy of the state. fn returns the keys it changed;
// those are written to the store and, once all writes succeed, the copy
// becomes the new state. On error nothing is committed in memory.
func (s *State) Update(ctx context.Context, fn func(snap *Snapshot) ([]string, error)) error {
	s.mu.Lock()
	next := s.snap.clone()
	keys, err := fn(&next)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	for _, key := range keys {
		if err := s.persist(ctx, &next, key); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.snap = next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if len(keys) > 0 {
		change := Change{Keys: keys}
		for _, l := range listeners {
			l(ctx, change)
		}
	}
	return nil
}

// Clear removes every persisted key and empties the working copies.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.repo.Delete(ctx, store.AllKeys...); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear state: %w", err)
	}
	s.snap = emptySnapshot()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	change := Change{Keys: append([]string(nil), store.AllKeys...)}
	for _, l := range listeners {
		l(ctx, change)
	}
	return nil
}

func (s *State) persist(ctx context.Context, snap *Snapshot, key string) error {
	switch key {
	case store.KeyItems:
		return store.SaveJSON(ctx, s.repo, key, snap.Items)
	case store.KeyRecipes:
		return store.SaveJSON(ctx, s.repo, key, snap.Recipes)
	case store.KeyAnalytics:
		return store.SaveJSON(ctx, s.repo, key, snap.Analytics)
	case store.KeyPreferences:
		return store.SaveJSON(ctx, s.repo, key, snap.Preferences)
	case store.KeyUser:
		if snap.User == nil {
			return s.repo.Delete(ctx, key)
		}
		return store.SaveJSON(ctx, s.repo, key, snap.User)
	case store.KeyRecipeAPIKey:
		if snap.RecipeAPIKey == "" {
			return s.repo.Delete(ctx, key)
		}
		return store.SaveJSON(ctx, s.repo, key, snap.RecipeAPIKey)
	default:
		return fmt.Errorf("unknown state key %q", key)
	}
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Items:        append([]entities.Item{}, s.Items...),
		Recipes:      append([]entities.Recipe{}, s.Recipes...),
		Analytics:    make(map[string]any, len(s.Analytics)),
		Preferences:  make(entities.Preferences, len(s.Preferences)),
		RecipeAPIKey: s.RecipeAPIKey,
	}
	for k, v := range s.Analytics {
		out.Analytics[k] = v
	}
	for k, v := range s.Preferences {
		out.Preferences[k] = v
	}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
