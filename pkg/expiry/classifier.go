package expiry

import (
	"time"
)

type Status string

const (
	Fresh        Status = "fresh"
	ExpiringSoon Status = "expiring-soon"
	Expired      Status = "expired"

	// SoonWindowDays is the inclusive upper bound of the expiring-soon bucket.
	SoonWindowDays = 3.0
)

// Statuses lists every bucket in display order.
var Statuses = []Status{Fresh, ExpiringSoon, Expired}

// DaysUntil returns the fractional number of 24h periods from now to expiry.
// The result is negative once expiry has passed.
func DaysUntil(expiryDate, now time.Time) float64 {
	return expiryDate.Sub(now).Hours() / 24
}

// Classify buckets an expiry date relative to now. An item expiring exactly
// now is already expired.
func Classify(expiryDate, now time.Time) Status {
	if !expiryDate.After(now) {
		return Expired
	}
	if DaysUntil(expiryDate, now) <= SoonWindowDays {
		return ExpiringSoon
	}
	return Fresh
}

func IsExpired(expiryDate, now time.Time) bool {
	return Classify(expiryDate, now) == Expired
}

func ParseStatus(raw string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// Label is the human-readable form used by the CSV export.
func (s Status) Label() string {
	switch s {
	case Expired:
		return "Expired"
	case ExpiringSoon:
		return "Expiring Soon"
	default:
		return "Fresh"
	}
}
