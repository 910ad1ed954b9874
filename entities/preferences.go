package entities

import (
	"fmt"
	"strconv"
)

const (
	PrefNotificationEmail = "notification-email"
	PrefNotificationPush  = "notification-push"
	PrefReminderDays      = "reminder-days"
	PrefDefaultCategory   = "default-category"
	PrefCurrency          = "currency"
)

// Preferences is a flat setting name to scalar mapping.
type Preferences map[string]any

func DefaultPreferences() Preferences {
	return Preferences{
		PrefNotificationEmail: false,
		PrefNotificationPush:  false,
		PrefReminderDays:      float64(3),
		PrefDefaultCategory:   "other",
		PrefCurrency:          "USD",
	}
}

// Clone copies p, filling unset keys from the defaults.
func (p Preferences) Clone() Preferences {
	out := DefaultPreferences()
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p Preferences) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Int reads numeric settings. Form posts store them as strings.
func (p Preferences) Int(key string, fallback int) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (p Preferences) String(key string, fallback string) string {
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Validate rejects values that are not scalars. Settings are a flat mapping.
func (p Preferences) Validate() error {
	for k, v := range p {
		switch v.(type) {
		case nil, bool, string, float64, float32, int, int64:
		default:
			return fmt.Errorf("preference %q must be a string, number or boolean", k)
		}
	}
	return nil
}
