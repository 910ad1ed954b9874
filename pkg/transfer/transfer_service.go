package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"wastenot/domain"
	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/expiry"
	"wastenot/pkg/store"
)

var csvHeader = []string{"Name", "Category", "Quantity", "Unit", "Expiry Date", "Status", "Notes"}

type (
	// Bundle is the JSON export document. Import accepts the same shape.
	Bundle struct {
		Items       []entities.Item      `json:"items"`
		Recipes     []entities.Recipe    `json:"recipes"`
		Analytics   map[string]any       `json:"analytics"`
		Preferences entities.Preferences `json:"preferences"`
		User        *entities.User       `json:"user"`
	}

	TransferService interface {
		Export(ctx context.Context, format string, w io.Writer) (string, error)
		ExportCSV(ctx context.Context, w io.Writer) error
		ExportJSON(ctx context.Context, w io.Writer) error
		Import(ctx context.Context, r io.Reader) (domain.ImportResponse, error)
		ClearAll(ctx context.Context) error
	}

	transferService struct {
		state *appstate.State
		loc   *time.Location
		now   func() time.Time
	}
)

// NewTransferService writes CSV expiry dates as calendar days in loc.
func NewTransferService(state *appstate.State, loc *time.Location) TransferService {
	if loc == nil {
		loc = time.Local
	}
	return &transferService{
		state: state,
		loc:   loc,
		now:   time.Now,
	}
}

// Export writes the inventory in the requested format and returns its
// content type.
func (s *transferService) Export(ctx context.Context, format string, w io.Writer) (string, error) {
	contentType, err := ContentType(format)
	if err != nil {
		return "", err
	}
	if contentType == "text/csv" {
		return contentType, s.ExportCSV(ctx, w)
	}
	return contentType, s.ExportJSON(ctx, w)
}

// ContentType returns the media type of an export format. An empty format
// means JSON.
func ContentType(format string) (string, error) {
	switch format {
	case domain.ExportFormatCSV:
		return "text/csv", nil
	case domain.ExportFormatJSON, "":
		return "application/json", nil
	default:
		return "", fmt.Errorf("%w: %w: %q", domain.ErrValidation, domain.ErrUnknownExportFormat, format)
	}
}

func (s *transferService) ExportCSV(ctx context.Context, w io.Writer) error {
	if err := s.state.Reload(ctx); err != nil {
		return err
	}
	return WriteCSV(w, s.state.Items(), s.now().In(s.loc))
}

// WriteCSV renders one row per item under a fixed header. Expiry dates are
// written as calendar days in now's location.
func WriteCSV(w io.Writer, items []entities.Item, now time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range items {
		row := []string{
			it.Name,
			it.Category,
			strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			it.Unit,
			it.ExpiryDate.Day(now.Location()),
			expiry.Classify(it.ExpiryDate.Time, now).Label(),
			it.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *transferService) ExportJSON(ctx context.Context, w io.Writer) error {
	if err := s.state.Reload(ctx); err != nil {
		return err
	}
	snap := s.state.Snapshot()
	bundle := Bundle{
		Items:       snap.Items,
		Recipes:     snap.Recipes,
		Analytics:   snap.Analytics,
		Preferences: snap.Preferences,
		User:        snap.User,
	}

	raw, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	_, err = w.Write(raw)
	return err
}

func importError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrImportFormat, fmt.Sprintf(format, args...))
}

// Import replaces the stored collections with the bundle read from r. The
// bundle is decoded fully before anything is written; items are required
// and the other sections are applied only when present.
func (s *transferService) Import(ctx context.Context, r io.Reader) (domain.ImportResponse, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return domain.ImportResponse{}, importError("read: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.ImportResponse{}, importError("not a JSON object: %v", err)
	}

	itemsRaw, ok := doc["items"]
	if !ok || !isArray(itemsRaw) {
		return domain.ImportResponse{}, importError("items must be a list")
	}
	var items []entities.Item
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return domain.ImportResponse{}, importError("items: %v", err)
	}

	var (
		recipes     []entities.Recipe
		analytics   map[string]any
		preferences entities.Preferences
		user        *entities.User
	)
	keys := []string{store.KeyItems}
	sections := []struct {
		key string
		dst any
	}{
		{store.KeyRecipes, &recipes},
		{store.KeyAnalytics, &analytics},
		{store.KeyPreferences, &preferences},
		{store.KeyUser, &user},
	}
	for _, sec := range sections {
		v, ok := doc[sec.key]
		if !ok || isNull(v) {
			continue
		}
		if err := json.Unmarshal(v, sec.dst); err != nil {
			return domain.ImportResponse{}, importError("%s: %v", sec.key, err)
		}
		keys = append(keys, sec.key)
	}
	if err := preferences.Validate(); err != nil {
		return domain.ImportResponse{}, importError("%v", err)
	}

	err = s.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		snap.Items = append([]entities.Item{}, items...)
		for _, key := range keys[1:] {
			switch key {
			case store.KeyRecipes:
				snap.Recipes = append([]entities.Recipe{}, recipes...)
			case store.KeyAnalytics:
				snap.Analytics = analytics
			case store.KeyPreferences:
				snap.Preferences = preferences
			case store.KeyUser:
				snap.User = user
			}
		}
		return keys, nil
	})
	if err != nil {
		return domain.ImportResponse{}, err
	}

	return domain.ImportResponse{
		Items:   len(items),
		Recipes: len(recipes),
		Keys:    keys,
	}, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (s *transferService) ClearAll(ctx context.Context) error {
	return s.state.Clear(ctx)
}
