package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// acceptedLayouts lists the formats found in stored items: full timestamps
// written by the service and plain dates typed into the add form.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Date is a point in time persisted as an ISO-8601 string.
type Date struct {
	time.Time
}

// NewDate stores t in UTC so persisted values compare equal after a reload.
func NewDate(t time.Time) Date {
	return Date{Time: t.UTC()}
}

func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognised date %q", raw)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339Nano))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if raw == nil || *raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Day formats the calendar day in loc the way the CSV export shows it.
func (d Date) Day(loc *time.Location) string {
	if d.IsZero() {
		return ""
	}
	return d.Time.In(loc).Format("2006-01-02")
}
