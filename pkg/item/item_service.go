package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/expiry"
)

type (
	ItemService interface {
		AddItem(ctx context.Context, req domain.AddItemRequest) (domain.ItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) (domain.ItemResponse, error)
		DeleteItem(ctx context.Context, id string) error
		BulkDelete(ctx context.Context, req domain.BulkDeleteRequest) (domain.BulkDeleteResponse, error)
		GetItems(ctx context.Context, filter domain.ItemFilter) ([]domain.ItemResponse, error)
		GetItemByID(ctx context.Context, id string) (domain.ItemResponse, error)
		GetRecentItems(ctx context.Context, n int) ([]domain.ItemResponse, error)
		GetExpiringItems(ctx context.Context) ([]domain.ItemResponse, error)
	}

	itemService struct {
		state          *appstate.State
		itemRepository ItemRepository
		now            func() time.Time
	}
)

func NewItemService(state *appstate.State, itemRepository ItemRepository) ItemService {
	return &itemService{
		state:          state,
		itemRepository: itemRepository,
		now:            time.Now,
	}
}

func parseExpiry(raw string) (entities.Date, error) {
	d, err := entities.ParseDate(raw)
	if err != nil {
		return entities.Date{}, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidExpiryDate)
	}
	return d, nil
}

func (s *itemService) AddItem(ctx context.Context, req domain.AddItemRequest) (domain.ItemResponse, error) {
	item := entities.Item{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}
	if strings.TrimSpace(req.ExpiryDate) != "" {
		d, err := parseExpiry(req.ExpiryDate)
		if err != nil {
			return domain.ItemResponse{}, err
		}
		item.ExpiryDate = d
	}

	created, err := s.itemRepository.Add(ctx, item)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	return ToItemResponse(created, s.now()), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest) (domain.ItemResponse, error) {
	patch := entities.ItemPatch{
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}
	if req.ExpiryDate != nil {
		d, err := parseExpiry(*req.ExpiryDate)
		if err != nil {
			return domain.ItemResponse{}, err
		}
		patch.ExpiryDate = &d
	}

	updated, found, err := s.itemRepository.Update(ctx, id, patch)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	if !found {
		return domain.ItemResponse{}, domain.ErrItemNotFound
	}
	return ToItemResponse(updated, s.now()), nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	removed, err := s.itemRepository.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrItemNotFound
	}
	return nil
}

func (s *itemService) BulkDelete(ctx context.Context, req domain.BulkDeleteRequest) (domain.BulkDeleteResponse, error) {
	removed, err := s.itemRepository.RemoveMany(ctx, req.IDs)
	if err != nil {
		return domain.BulkDeleteResponse{}, err
	}
	return domain.BulkDeleteResponse{
		Removed:   removed,
		Remaining: len(s.itemRepository.List()),
	}, nil
}

func (s *itemService) GetItems(ctx context.Context, filter domain.ItemFilter) ([]domain.ItemResponse, error) {
	var status expiry.Status
	if filter.Status != "" {
		parsed, ok := expiry.ParseStatus(filter.Status)
		if !ok {
			return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrUnknownStatus)
		}
		status = parsed
	}
	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	items := s.itemRepository.Query(All(
		MatchSearch(filter.Search),
		MatchCategory(filter.Category),
		MatchStatus(status, now),
	))
	return ToItemResponses(items, now), nil
}

func (s *itemService) GetItemByID(ctx context.Context, id string) (domain.ItemResponse, error) {
	if err := s.state.Reload(ctx); err != nil {
		return domain.ItemResponse{}, err
	}
	item, ok := s.itemRepository.Get(id)
	if !ok {
		return domain.ItemResponse{}, domain.ErrItemNotFound
	}
	return ToItemResponse(item, s.now()), nil
}

func (s *itemService) GetRecentItems(ctx context.Context, n int) ([]domain.ItemResponse, error) {
	if n <= 0 {
		n = domain.DefaultRecentItems
	}
	if n > domain.MaxRecentItems {
		n = domain.MaxRecentItems
	}
	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}
	return ToItemResponses(s.itemRepository.MostRecent(n), s.now()), nil
}

func (s *itemService) GetExpiringItems(ctx context.Context) ([]domain.ItemResponse, error) {
	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	return ToItemResponses(s.itemRepository.Expiring(now), now), nil
}

func ToItemResponse(item entities.Item, now time.Time) domain.ItemResponse {
	return domain.ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		ExpiryDate:      item.ExpiryDate.Time,
		AddedDate:       item.AddedDate.Time,
		Notes:           item.Notes,
		Status:          string(expiry.Classify(item.ExpiryDate.Time, now)),
		DaysUntilExpiry: expiry.DaysUntil(item.ExpiryDate.Time, now),
	}
}

func ToItemResponses(items []entities.Item, now time.Time) []domain.ItemResponse {
	out := make([]domain.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it, now))
	}
	return out
}
