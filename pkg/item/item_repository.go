package item

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/expiry"
	"wastenot/pkg/store"
)

type (
	// Predicate selects items for Query.
	Predicate func(item entities.Item) bool

	ItemRepository interface {
		Add(ctx context.Context, item entities.Item) (entities.Item, error)
		Update(ctx context.Context, id string, patch entities.ItemPatch) (entities.Item, bool, error)
		Remove(ctx context.Context, id string) (bool, error)
		RemoveMany(ctx context.Context, ids []string) (int, error)
		Get(id string) (entities.Item, bool)
		List() []entities.Item
		Query(pred Predicate) []entities.Item
		MostRecent(n int) []entities.Item
		Expiring(now time.Time) []entities.Item
	}

	itemRepository struct {
		state *appstate.State
		now   func() time.Time
	}
)

func NewItemRepository(state *appstate.State) ItemRepository {
	return &itemRepository{state: state, now: time.Now}
}

func newItemID() string {
	return "item_" + uuid.New().String()
}

func validateItem(item entities.Item) error {
	var missing []string
	if strings.TrimSpace(item.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(item.Category) == "" {
		missing = append(missing, "category")
	}
	if item.ExpiryDate.IsZero() {
		missing = append(missing, "expiryDate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidQuantity)
	}
	return nil
}

func (r *itemRepository) Add(ctx context.Context, item entities.Item) (entities.Item, error) {
	if err := validateItem(item); err != nil {
		return entities.Item{}, err
	}
	if item.ID == "" {
		item.ID = newItemID()
	}
	if item.AddedDate.IsZero() {
		item.AddedDate = entities.NewDate(r.now())
	}

	err := r.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		snap.Items = append(snap.Items, item)
		return []string{store.KeyItems}, nil
	})
	if err != nil {
		return entities.Item{}, err
	}
	return item, nil
}

func (r *itemRepository) Update(ctx context.Context, id string, patch entities.ItemPatch) (entities.Item, bool, error) {
	var (
		updated entities.Item
		found   bool
	)
	err := r.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		for i := range snap.Items {
			if snap.Items[i].ID != id {
				continue
			}
			merged := patch.Apply(snap.Items[i])
			if err := validateItem(merged); err != nil {
				return nil, err
			}
			snap.Items[i] = merged
			updated, found = merged, true
			return []string{store.KeyItems}, nil
		}
		return nil, nil
	})
	if err != nil {
		return entities.Item{}, false, err
	}
	return updated, found, nil
}

func (r *itemRepository) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := r.RemoveMany(ctx, []string{id})
	return removed > 0, err
}

// RemoveMany drops every item whose id is in ids and persists the remainder.
func (r *itemRepository) RemoveMany(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	removed := 0
	err := r.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		kept := make([]entities.Item, 0, len(snap.Items))
		for _, it := range snap.Items {
			if _, ok := drop[it.ID]; ok {
				removed++
				continue
			}
			kept = append(kept, it)
		}
		snap.Items = kept
		return []string{store.KeyItems}, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *itemRepository) Get(id string) (entities.Item, bool) {
	for _, it := range r.state.Items() {
		if it.ID == id {
			return it, true
		}
	}
	return entities.Item{}, false
}

func (r *itemRepository) List() []entities.Item {
	return r.state.Items()
}

func (r *itemRepository) Query(pred Predicate) []entities.Item {
	out := []entities.Item{}
	for _, it := range r.state.Items() {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func (r *itemRepository) MostRecent(n int) []entities.Item {
	return MostRecent(r.state.Items(), n)
}

func (r *itemRepository) Expiring(now time.Time) []entities.Item {
	soon := r.Query(MatchStatus(expiry.ExpiringSoon, now))
	sort.SliceStable(soon, func(i, j int) bool {
		return soon[i].ExpiryDate.Before(soon[j].ExpiryDate.Time)
	})
	return soon
}

// MostRecent returns the n items with the latest addedDate, newest first.
// items is not modified.
func MostRecent(items []entities.Item, n int) []entities.Item {
	if n <= 0 {
		return []entities.Item{}
	}
	sorted := append([]entities.Item{}, items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AddedDate.After(sorted[j].AddedDate.Time)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
