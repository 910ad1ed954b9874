package store

import (
	"context"
	"encoding/json"
	"fmt"

	"wastenot/domain"
)

// LoadJSON decodes the document under key into dst. A missing key leaves dst
// untouched and reports false. Corrupt JSON is reported as domain.ErrStorageParse.
func LoadJSON(ctx context.Context, repo StoreRepository, key string, dst any) (bool, error) {
	raw, ok, err := repo.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", domain.ErrStorageParse, key, err)
	}
	return true, nil
}

func SaveJSON(ctx context.Context, repo StoreRepository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return repo.Put(ctx, key, raw)
}
