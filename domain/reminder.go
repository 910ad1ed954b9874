package domain

import (
	"time"
)

var (
	MessageSuccessGetReminder  = "reminder summary retrieved successfully"
	MessageSuccessSendReminder = "reminder sent successfully"
	MessageFailedGetReminder   = "failed to build reminder summary"
	MessageFailedSendReminder  = "failed to send reminder"
)

type (
	ReminderSummary struct {
		GeneratedAt  time.Time      `json:"generated_at"`
		ReminderDays int            `json:"reminder_days"`
		Expiring     []ItemResponse `json:"expiring"`
		ExpiredCount int            `json:"expired_count"`
	}

	ReminderResult struct {
		Sent    bool            `json:"sent"`
		To      string          `json:"to,omitempty"`
		Reason  string          `json:"reason,omitempty"`
		Summary ReminderSummary `json:"summary"`
	}
)
